package providers

import (
	"context"
	"database/sql"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/queries"
)

type providerPostgresRepository struct {
	DB *sql.DB
}

func NewProviderPostgresRepository(db *sql.DB) contracts.ProviderRepository {
	return &providerPostgresRepository{
		DB: db,
	}
}

func (repo *providerPostgresRepository) FindAll(ctx context.Context) ([]models.Provider, error) {
	query := queries.GetAllProviders
	rows, err := repo.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		providers = append(providers, *provider)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return providers, nil
}

func (repo *providerPostgresRepository) FindByID(ctx context.Context, providerID int64) (*models.Provider, error) {
	query := queries.GetProviderByID
	provider, err := scanProvider(repo.DB.QueryRowContext(ctx, query, providerID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return provider, nil
}

func (repo *providerPostgresRepository) FindByCode(ctx context.Context, code string) (*models.Provider, error) {
	query := queries.GetProviderByCode
	provider, err := scanProvider(repo.DB.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return provider, nil
}

func (repo *providerPostgresRepository) CreateProvider(ctx context.Context, provider *models.Provider) (*models.Provider, error) {
	query := queries.InsertProvider
	created, err := scanProvider(repo.DB.QueryRowContext(ctx, query,
		provider.Code,
		provider.Name,
		provider.SupportsDirectClaims,
		nullString(provider.APIEndpoint),
		provider.AutoApprovalLimit,
		provider.TestMode,
		provider.RealTimeValidation,
		nullString(provider.WebhookSecret),
	))
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return created, nil
}

func (repo *providerPostgresRepository) UpdateProvider(ctx context.Context, provider *models.Provider) (*models.Provider, error) {
	query := queries.UpdateProvider
	updated, err := scanProvider(repo.DB.QueryRowContext(ctx, query,
		provider.Name,
		provider.SupportsDirectClaims,
		nullString(provider.APIEndpoint),
		provider.AutoApprovalLimit,
		provider.TestMode,
		provider.RealTimeValidation,
		nullString(provider.WebhookSecret),
		provider.ID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*models.Provider, error) {
	var provider models.Provider
	var apiEndpoint, webhookSecret sql.NullString
	var autoApprovalLimit sql.NullFloat64

	err := row.Scan(
		&provider.ID,
		&provider.Code,
		&provider.Name,
		&provider.SupportsDirectClaims,
		&apiEndpoint,
		&autoApprovalLimit,
		&provider.TestMode,
		&provider.RealTimeValidation,
		&webhookSecret,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	provider.APIEndpoint = apiEndpoint.String
	provider.WebhookSecret = webhookSecret.String
	if autoApprovalLimit.Valid {
		provider.AutoApprovalLimit = &autoApprovalLimit.Float64
	}
	return &provider, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
