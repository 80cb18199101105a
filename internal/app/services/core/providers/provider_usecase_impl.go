package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
	"claimswitch-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	providerUsecaseInstance contracts.ProviderUsecase
	onceProviderUsecase     sync.Once
)

type providerUsecase struct {
	ProviderRepository contracts.ProviderRepository
	Log                *zap.Logger
}

func NewProviderUsecase(providerRepository contracts.ProviderRepository, logger *zap.Logger) contracts.ProviderUsecase {
	onceProviderUsecase.Do(func() {
		providerUsecaseInstance = &providerUsecase{
			ProviderRepository: providerRepository,
			Log:                logger,
		}
	})
	return providerUsecaseInstance
}

func (uc *providerUsecase) GetAllProviders(ctx context.Context) ([]responses.ProviderResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("providerUsecase.GetAllProviders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	providers, err := uc.ProviderRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]responses.ProviderResponse, 0, len(providers))
	for i := range providers {
		result = append(result, *buildProviderResponse(&providers[i]))
	}
	return result, nil
}

func (uc *providerUsecase) GetProviderByID(ctx context.Context, providerID int64) (*responses.ProviderResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("providerUsecase.GetProviderByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProviderIDKey, providerID),
	)

	provider, err := uc.ProviderRepository.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, exceptions.ErrProviderNotFound(fmt.Errorf("provider %d not found", providerID))
	}
	return buildProviderResponse(provider), nil
}

func (uc *providerUsecase) CreateProvider(ctx context.Context, request *requests.CreateProviderRequest) (*responses.ProviderResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("providerUsecase.CreateProvider called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, request.Code),
	)

	code := strings.ToUpper(request.Code)
	if code == constvars.ManualProviderCode {
		return nil, exceptions.ErrClientCustomMessage(fmt.Errorf("provider code %s is reserved for manual claims", constvars.ManualProviderCode))
	}

	existing, err := uc.ProviderRepository.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrClientCustomMessage(fmt.Errorf("provider code %s already registered", code))
	}

	provider := &models.Provider{
		Code:                 code,
		Name:                 request.Name,
		SupportsDirectClaims: request.SupportsDirectClaims,
		APIEndpoint:          request.APIEndpoint,
		TestMode:             request.TestMode,
		RealTimeValidation:   request.RealTimeValidation,
		WebhookSecret:        request.WebhookSecret,
	}
	if request.AutoApprovalLimit > 0 {
		provider.AutoApprovalLimit = &request.AutoApprovalLimit
	}

	created, err := uc.ProviderRepository.CreateProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	return buildProviderResponse(created), nil
}

func (uc *providerUsecase) UpdateProvider(ctx context.Context, providerID int64, request *requests.UpdateProviderRequest) (*responses.ProviderResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("providerUsecase.UpdateProvider called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProviderIDKey, providerID),
	)

	provider, err := uc.ProviderRepository.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, exceptions.ErrProviderNotFound(fmt.Errorf("provider %d not found", providerID))
	}

	provider.Name = request.Name
	provider.SupportsDirectClaims = request.SupportsDirectClaims
	provider.APIEndpoint = request.APIEndpoint
	provider.TestMode = request.TestMode
	provider.RealTimeValidation = request.RealTimeValidation
	provider.AutoApprovalLimit = nil
	if request.AutoApprovalLimit > 0 {
		provider.AutoApprovalLimit = &request.AutoApprovalLimit
	}
	if request.WebhookSecret != "" {
		provider.WebhookSecret = request.WebhookSecret
	}

	updated, err := uc.ProviderRepository.UpdateProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrProviderNotFound(fmt.Errorf("provider %d not found", providerID))
	}
	return buildProviderResponse(updated), nil
}

func buildProviderResponse(provider *models.Provider) *responses.ProviderResponse {
	return &responses.ProviderResponse{
		ID:                   provider.ID,
		Code:                 provider.Code,
		Name:                 provider.Name,
		SupportsDirectClaims: provider.SupportsDirectClaims,
		APIEndpoint:          provider.APIEndpoint,
		AutoApprovalLimit:    provider.EffectiveAutoApprovalLimit(constvars.DefaultAutoApprovalLimit),
		TestMode:             provider.TestMode,
		RealTimeValidation:   provider.RealTimeValidation,
		CreatedAt:            provider.CreatedAt,
		UpdatedAt:            provider.UpdatedAt,
	}
}
