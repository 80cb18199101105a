package membership

import (
	"context"
	"errors"
	"testing"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProviderRepository struct {
	provider *models.Provider
}

func (repo *stubProviderRepository) FindAll(_ context.Context) ([]models.Provider, error) {
	return nil, nil
}

func (repo *stubProviderRepository) FindByID(_ context.Context, providerID int64) (*models.Provider, error) {
	if repo.provider == nil || repo.provider.ID != providerID {
		return nil, nil
	}
	copied := *repo.provider
	return &copied, nil
}

func (repo *stubProviderRepository) FindByCode(_ context.Context, _ string) (*models.Provider, error) {
	return nil, nil
}

func (repo *stubProviderRepository) CreateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

func (repo *stubProviderRepository) UpdateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

type stubGateway struct {
	result *models.MembershipValidationResult
	err    error
	called bool
}

func (gw *stubGateway) SubmitClaim(_ context.Context, _ *models.Provider, _ *models.Claim) (*models.ProviderSubmissionResult, error) {
	return nil, errors.New("not used")
}

func (gw *stubGateway) ValidateMembership(_ context.Context, _ *models.Provider, _, _ string) (*models.MembershipValidationResult, error) {
	gw.called = true
	if gw.err != nil {
		return nil, gw.err
	}
	return gw.result, nil
}

type stubSelector struct {
	gateway contracts.ProviderGateway
}

func (sel *stubSelector) GatewayFor(_ *models.Provider) contracts.ProviderGateway {
	return sel.gateway
}

func newMembershipFixture(provider *models.Provider, gateway *stubGateway) *membershipUsecase {
	return &membershipUsecase{
		ProviderRepository: &stubProviderRepository{provider: provider},
		GatewaySelector:    &stubSelector{gateway: gateway},
		InternalConfig: &config.InternalConfig{
			Claims: config.Claims{GatewayTimeoutInSeconds: 2},
		},
		Log: zap.NewNop(),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")
}

func validationRequest(providerID int64) *requests.ValidateMembershipRequest {
	return &requests.ValidateMembershipRequest{
		ProviderID:       providerID,
		MembershipNumber: "MEM-001122",
	}
}

func TestValidateMembership_NoRealTimeValidation(t *testing.T) {
	provider := &models.Provider{ID: 3, Code: "BON", RealTimeValidation: false}
	gateway := &stubGateway{}
	uc := newMembershipFixture(provider, gateway)

	response, err := uc.ValidateMembership(testContext(), validationRequest(provider.ID))
	require.NoError(t, err)

	assert.True(t, response.Valid, "providers without real-time checks accept optimistically")
	assert.Equal(t, constvars.MembershipNoRealTimeMessage, response.Message)
	assert.False(t, gateway.called)
}

func TestValidateMembership_GatewaySuccess(t *testing.T) {
	provider := &models.Provider{ID: 3, Code: "DSC", RealTimeValidation: true, APIEndpoint: "https://api.example"}
	gateway := &stubGateway{
		result: &models.MembershipValidationResult{
			Valid:   true,
			Message: "Membership active",
			Benefits: &models.MembershipBenefitSummary{
				AnnualLimit:             25000,
				RemainingBenefit:        18340.55,
				CopaymentPercentage:     0.10,
				ChronicMedicinesCovered: true,
			},
		},
	}
	uc := newMembershipFixture(provider, gateway)

	response, err := uc.ValidateMembership(testContext(), validationRequest(provider.ID))
	require.NoError(t, err)

	assert.True(t, response.Valid)
	require.NotNil(t, response.Benefits)
	assert.Equal(t, 25000.0, response.Benefits.AnnualLimit)
	assert.True(t, response.Benefits.ChronicMedicinesCovered)
}

func TestValidateMembership_GatewayFailureDegrades(t *testing.T) {
	provider := &models.Provider{ID: 3, Code: "DSC", RealTimeValidation: true, APIEndpoint: "https://api.example"}
	gateway := &stubGateway{err: exceptions.ErrGatewayValidateMembership(errors.New("timeout"))}
	uc := newMembershipFixture(provider, gateway)

	response, err := uc.ValidateMembership(testContext(), validationRequest(provider.ID))
	require.NoError(t, err, "gateway trouble never surfaces as an error")

	assert.False(t, response.Valid)
	assert.Equal(t, constvars.ErrClientValidationUnavailable, response.Message)
}

func TestValidateMembership_UnknownProvider(t *testing.T) {
	uc := newMembershipFixture(nil, &stubGateway{})

	response, err := uc.ValidateMembership(testContext(), validationRequest(42))
	require.NoError(t, err)

	assert.False(t, response.Valid)
	assert.Equal(t, constvars.ErrClientProviderNotFound, response.Message)
}
