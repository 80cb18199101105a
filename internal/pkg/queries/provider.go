package queries

const (
	GetAllProviders = `
		SELECT
			id,
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
		FROM medical_aid_providers
		ORDER BY code
	`

	GetProviderByID = `
		SELECT
			id,
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
		FROM medical_aid_providers
		WHERE id = $1
	`

	GetProviderByCode = `
		SELECT
			id,
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
		FROM medical_aid_providers
		WHERE code = $1
	`

	InsertProvider = `
		INSERT INTO medical_aid_providers (
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING
			id,
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
	`

	UpdateProvider = `
		UPDATE medical_aid_providers
		SET
			name = $1,
			supports_direct_claims = $2,
			api_endpoint = $3,
			auto_approval_limit = $4,
			test_mode = $5,
			real_time_validation = $6,
			webhook_secret = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING
			id,
			code,
			name,
			supports_direct_claims,
			api_endpoint,
			auto_approval_limit,
			test_mode,
			real_time_validation,
			webhook_secret,
			created_at,
			updated_at
	`
)
