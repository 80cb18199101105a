package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/app/services/shared/jwtmanager"
	"claimswitch-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "super-secret-webhook-key"

type stubProviderRepository struct {
	provider *models.Provider
}

func (repo *stubProviderRepository) FindAll(_ context.Context) ([]models.Provider, error) {
	return nil, nil
}

func (repo *stubProviderRepository) FindByID(_ context.Context, _ int64) (*models.Provider, error) {
	return nil, nil
}

func (repo *stubProviderRepository) FindByCode(_ context.Context, code string) (*models.Provider, error) {
	if repo.provider == nil || repo.provider.Code != code {
		return nil, nil
	}
	copied := *repo.provider
	return &copied, nil
}

func (repo *stubProviderRepository) CreateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

func (repo *stubProviderRepository) UpdateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

func newAuthFixture(provider *models.Provider) *Middlewares {
	return &Middlewares{
		Log:                 zap.NewNop(),
		ProviderRepository:  &stubProviderRepository{provider: provider},
		WebhookTokenManager: jwtmanager.NewWebhookTokenManager(30 * time.Second),
		InternalConfig:      &config.InternalConfig{},
	}
}

func performWebhookRequest(t *testing.T, m *Middlewares, providerCode, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	handler := m.WebhookAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		code, _ := r.Context().Value(constvars.CONTEXT_PROVIDER_CODE_KEY).(string)
		assert.Equal(t, providerCode, code)
		w.WriteHeader(http.StatusAccepted)
	}))

	router := chi.NewRouter()
	router.Post("/webhooks/claims/{providerCode}", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/claims/"+providerCode, nil)
	if authorization != "" {
		req.Header.Set(constvars.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, reached
}

func TestWebhookAuth_ValidToken(t *testing.T) {
	provider := &models.Provider{ID: 1, Code: "DSC", WebhookSecret: testWebhookSecret}
	m := newAuthFixture(provider)

	token, err := jwtmanager.SignToken("DSC", testWebhookSecret, time.Minute)
	require.NoError(t, err)

	rec, reached := performWebhookRequest(t, m, "DSC", "Bearer "+token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestWebhookAuth_MissingToken(t *testing.T) {
	provider := &models.Provider{ID: 1, Code: "DSC", WebhookSecret: testWebhookSecret}
	m := newAuthFixture(provider)

	rec, reached := performWebhookRequest(t, m, "DSC", "")
	assert.False(t, reached)
	assert.Equal(t, constvars.StatusUnauthorized, rec.Code)
}

func TestWebhookAuth_WrongSecret(t *testing.T) {
	provider := &models.Provider{ID: 1, Code: "DSC", WebhookSecret: testWebhookSecret}
	m := newAuthFixture(provider)

	token, err := jwtmanager.SignToken("DSC", "some-other-secret-entirely", time.Minute)
	require.NoError(t, err)

	rec, reached := performWebhookRequest(t, m, "DSC", "Bearer "+token)
	assert.False(t, reached)
	assert.Equal(t, constvars.StatusUnauthorized, rec.Code)
}

func TestWebhookAuth_ExpiredToken(t *testing.T) {
	provider := &models.Provider{ID: 1, Code: "DSC", WebhookSecret: testWebhookSecret}
	m := newAuthFixture(provider)

	token, err := jwtmanager.SignToken("DSC", testWebhookSecret, -time.Hour)
	require.NoError(t, err)

	rec, reached := performWebhookRequest(t, m, "DSC", "Bearer "+token)
	assert.False(t, reached)
	assert.Equal(t, constvars.StatusUnauthorized, rec.Code)
}

func TestWebhookAuth_UnknownProvider(t *testing.T) {
	m := newAuthFixture(nil)

	token, err := jwtmanager.SignToken("XYZ", testWebhookSecret, time.Minute)
	require.NoError(t, err)

	rec, reached := performWebhookRequest(t, m, "XYZ", "Bearer "+token)
	assert.False(t, reached)
	assert.Equal(t, constvars.StatusNotFound, rec.Code)
}
