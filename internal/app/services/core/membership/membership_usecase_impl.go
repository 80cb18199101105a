package membership

import (
	"context"
	"sync"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

var (
	membershipUsecaseInstance contracts.MembershipUsecase
	onceMembershipUsecase     sync.Once
)

type membershipUsecase struct {
	ProviderRepository contracts.ProviderRepository
	GatewaySelector    contracts.GatewaySelector
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

func NewMembershipUsecase(
	providerRepository contracts.ProviderRepository,
	gatewaySelector contracts.GatewaySelector,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.MembershipUsecase {
	onceMembershipUsecase.Do(func() {
		membershipUsecaseInstance = &membershipUsecase{
			ProviderRepository: providerRepository,
			GatewaySelector:    gatewaySelector,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return membershipUsecaseInstance
}

// ValidateMembership is advisory. The checkout flow calls it before claim
// submission, so it degrades instead of erroring: providers without real-time
// validation answer valid, and gateway trouble answers invalid with a
// service-unavailable message.
func (uc *membershipUsecase) ValidateMembership(ctx context.Context, request *requests.ValidateMembershipRequest) (*responses.MembershipValidationResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("membershipUsecase.ValidateMembership called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProviderIDKey, request.ProviderID),
	)

	provider, err := uc.ProviderRepository.FindByID(ctx, request.ProviderID)
	if err != nil || provider == nil {
		if err != nil {
			uc.Log.Error("membershipUsecase.ValidateMembership provider lookup failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		return &responses.MembershipValidationResponse{
			Valid:   false,
			Message: constvars.ErrClientProviderNotFound,
		}, nil
	}

	if !provider.RealTimeValidation {
		return &responses.MembershipValidationResponse{
			Valid:   true,
			Message: constvars.MembershipNoRealTimeMessage,
		}, nil
	}

	gateway := uc.GatewaySelector.GatewayFor(provider)
	timeout := time.Duration(uc.InternalConfig.Claims.GatewayTimeoutInSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := gateway.ValidateMembership(callCtx, provider, request.MembershipNumber, request.DependentCode)
	if err != nil {
		uc.Log.Warn("membershipUsecase.ValidateMembership gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderCodeKey, provider.Code),
			zap.Error(err),
		)
		return &responses.MembershipValidationResponse{
			Valid:   false,
			Message: constvars.ErrClientValidationUnavailable,
		}, nil
	}

	response := &responses.MembershipValidationResponse{
		Valid:   result.Valid,
		Message: result.Message,
	}
	if result.Benefits != nil {
		response.Benefits = &responses.MembershipBenefits{
			AnnualLimit:             result.Benefits.AnnualLimit,
			RemainingBenefit:        result.Benefits.RemainingBenefit,
			CopaymentPercentage:     result.Benefits.CopaymentPercentage,
			ChronicMedicinesCovered: result.Benefits.ChronicMedicinesCovered,
		}
	}
	return response, nil
}
