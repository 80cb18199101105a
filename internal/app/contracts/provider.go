package contracts

import (
	"context"

	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
)

type ProviderRepository interface {
	FindAll(ctx context.Context) ([]models.Provider, error)
	FindByID(ctx context.Context, providerID int64) (*models.Provider, error)
	FindByCode(ctx context.Context, code string) (*models.Provider, error)
	CreateProvider(ctx context.Context, provider *models.Provider) (*models.Provider, error)
	UpdateProvider(ctx context.Context, provider *models.Provider) (*models.Provider, error)
}

type ProviderUsecase interface {
	GetAllProviders(ctx context.Context) ([]responses.ProviderResponse, error)
	GetProviderByID(ctx context.Context, providerID int64) (*responses.ProviderResponse, error)
	CreateProvider(ctx context.Context, request *requests.CreateProviderRequest) (*responses.ProviderResponse, error)
	UpdateProvider(ctx context.Context, providerID int64, request *requests.UpdateProviderRequest) (*responses.ProviderResponse, error)
}
