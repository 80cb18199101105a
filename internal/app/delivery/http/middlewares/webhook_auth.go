package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WebhookAuth authenticates provider callbacks. Each provider signs its
// bearer token with its own webhook secret, so the provider is resolved from
// the URL before the token can be checked.
func (m *Middlewares) WebhookAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		providerCode := strings.ToUpper(chi.URLParam(r, constvars.URLParamProviderCode))
		provider, err := m.ProviderRepository.FindByCode(r.Context(), providerCode)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if provider == nil || provider.WebhookSecret == "" {
			m.Log.Warn("Middlewares.WebhookAuth unknown provider or missing secret",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderCodeKey, providerCode),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrProviderNotFound(fmt.Errorf("provider %s not registered for webhooks", providerCode)))
			return
		}

		authorization := r.Header.Get(constvars.HeaderAuthorization)
		if authorization == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrWebhookTokenMissing(nil))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
		if tokenString == "" || tokenString == authorization {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrWebhookTokenMissing(fmt.Errorf("authorization header is not a bearer token")))
			return
		}

		if err := m.WebhookTokenManager.VerifyToken(tokenString, provider.WebhookSecret); err != nil {
			m.Log.Warn("Middlewares.WebhookAuth token rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderCodeKey, providerCode),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrWebhookTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PROVIDER_CODE_KEY, providerCode)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
