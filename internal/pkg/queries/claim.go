package queries

const claimColumns = `
			id,
			claim_number,
			patient_id,
			provider_id,
			order_id,
			prescription_id,
			membership_number,
			dependent_code,
			total_amount,
			status,
			is_direct_submission,
			integration_status,
			covered_amount,
			patient_responsibility,
			approval_code,
			authorization_number,
			rejection_reason,
			submission_data,
			response_data,
			processing_duration_ms,
			auto_processed,
			real_time_validated,
			webhook_received,
			version,
			claim_date,
			last_updated`

const (
	GetClaimByID = `
		SELECT` + claimColumns + `
		FROM medical_aid_claims
		WHERE id = $1
	`

	GetClaimByNumber = `
		SELECT` + claimColumns + `
		FROM medical_aid_claims
		WHERE claim_number = $1
	`

	GetClaimsByPatientID = `
		SELECT` + claimColumns + `
		FROM medical_aid_claims
		WHERE patient_id = $1
		ORDER BY claim_date DESC
	`

	InsertClaim = `
		INSERT INTO medical_aid_claims (
			claim_number,
			patient_id,
			provider_id,
			order_id,
			prescription_id,
			membership_number,
			dependent_code,
			total_amount,
			status,
			is_direct_submission,
			integration_status,
			submission_data,
			version,
			claim_date,
			last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, NOW(), NOW())
		RETURNING` + claimColumns + `
	`

	// UpdateClaim is a compare-and-swap on the version column. Zero rows back
	// means another writer got there first.
	UpdateClaim = `
		UPDATE medical_aid_claims
		SET
			status = $1,
			integration_status = $2,
			covered_amount = $3,
			patient_responsibility = $4,
			approval_code = $5,
			authorization_number = $6,
			rejection_reason = $7,
			response_data = $8,
			processing_duration_ms = $9,
			auto_processed = $10,
			real_time_validated = $11,
			webhook_received = $12,
			version = version + 1,
			last_updated = NOW()
		WHERE id = $13 AND version = $14
		RETURNING` + claimColumns + `
	`
)
