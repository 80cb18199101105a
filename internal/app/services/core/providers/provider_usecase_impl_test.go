package providers

import (
	"context"
	"testing"

	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProviderRepository struct {
	providers map[string]*models.Provider
	nextID    int64
}

func newStubProviderRepository() *stubProviderRepository {
	return &stubProviderRepository{providers: make(map[string]*models.Provider)}
}

func (repo *stubProviderRepository) FindAll(_ context.Context) ([]models.Provider, error) {
	var result []models.Provider
	for _, provider := range repo.providers {
		result = append(result, *provider)
	}
	return result, nil
}

func (repo *stubProviderRepository) FindByID(_ context.Context, providerID int64) (*models.Provider, error) {
	for _, provider := range repo.providers {
		if provider.ID == providerID {
			copied := *provider
			return &copied, nil
		}
	}
	return nil, nil
}

func (repo *stubProviderRepository) FindByCode(_ context.Context, code string) (*models.Provider, error) {
	provider, ok := repo.providers[code]
	if !ok {
		return nil, nil
	}
	copied := *provider
	return &copied, nil
}

func (repo *stubProviderRepository) CreateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	repo.nextID++
	stored := *provider
	stored.ID = repo.nextID
	repo.providers[stored.Code] = &stored
	copied := stored
	return &copied, nil
}

func (repo *stubProviderRepository) UpdateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	stored := *provider
	repo.providers[stored.Code] = &stored
	copied := stored
	return &copied, nil
}

func newProviderFixture() (*providerUsecase, *stubProviderRepository) {
	repo := newStubProviderRepository()
	return &providerUsecase{ProviderRepository: repo, Log: zap.NewNop()}, repo
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")
}

func createProviderRequest(code string) *requests.CreateProviderRequest {
	return &requests.CreateProviderRequest{
		Code:                 code,
		Name:                 "Discovery Health",
		SupportsDirectClaims: true,
		APIEndpoint:          "https://api.discovery.example/claims/v1",
		AutoApprovalLimit:    1500,
		RealTimeValidation:   true,
		WebhookSecret:        "super-secret-webhook-key",
	}
}

func TestCreateProvider(t *testing.T) {
	uc, repo := newProviderFixture()

	response, err := uc.CreateProvider(testContext(), createProviderRequest("dsc"))
	require.NoError(t, err)

	assert.Equal(t, "DSC", response.Code, "codes are normalized to upper case")
	assert.Equal(t, 1500.0, response.AutoApprovalLimit)
	assert.NotZero(t, response.ID)

	stored := repo.providers["DSC"]
	require.NotNil(t, stored)
	assert.Equal(t, "super-secret-webhook-key", stored.WebhookSecret)
}

func TestCreateProvider_ReservedManualCode(t *testing.T) {
	uc, repo := newProviderFixture()

	_, err := uc.CreateProvider(testContext(), createProviderRequest(constvars.ManualProviderCode))
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	assert.Empty(t, repo.providers)
}

func TestCreateProvider_DuplicateCode(t *testing.T) {
	uc, _ := newProviderFixture()

	_, err := uc.CreateProvider(testContext(), createProviderRequest("DSC"))
	require.NoError(t, err)

	_, err = uc.CreateProvider(testContext(), createProviderRequest("DSC"))
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
}

func TestGetProviderByID_DefaultLimitAndNoSecret(t *testing.T) {
	uc, repo := newProviderFixture()
	repo.providers["BON"] = &models.Provider{
		ID:            3,
		Code:          "BON",
		Name:          "Bonitas Medical Fund",
		WebhookSecret: "never-shown-to-clients",
	}

	response, err := uc.GetProviderByID(testContext(), 3)
	require.NoError(t, err)

	assert.Equal(t, constvars.DefaultAutoApprovalLimit, response.AutoApprovalLimit,
		"providers without a configured limit report the platform default")
}

func TestGetProviderByID_NotFound(t *testing.T) {
	uc, _ := newProviderFixture()

	_, err := uc.GetProviderByID(testContext(), 99)
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestUpdateProvider(t *testing.T) {
	uc, repo := newProviderFixture()
	created, err := uc.CreateProvider(testContext(), createProviderRequest("DSC"))
	require.NoError(t, err)

	updated, err := uc.UpdateProvider(testContext(), created.ID, &requests.UpdateProviderRequest{
		Name:                 "Discovery Health Renamed",
		SupportsDirectClaims: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Discovery Health Renamed", updated.Name)
	assert.False(t, updated.SupportsDirectClaims)
	assert.Equal(t, constvars.DefaultAutoApprovalLimit, updated.AutoApprovalLimit, "omitting the limit resets it to the default")
	assert.Equal(t, "super-secret-webhook-key", repo.providers["DSC"].WebhookSecret, "an omitted secret keeps the stored one")
}
