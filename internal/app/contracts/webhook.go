package contracts

import (
	"context"
	"encoding/json"
)

type WebhookUsecase interface {
	// EnqueueCallback validates and durably enqueues a provider callback for
	// asynchronous reconciliation.
	EnqueueCallback(ctx context.Context, providerCode string, body json.RawMessage) error
	// ReconcileCallback applies one callback payload against the claim store.
	ReconcileCallback(ctx context.Context, providerCode string, body json.RawMessage) error
}

// WebhookTokenManager verifies provider-scoped bearer tokens on the webhook
// path. Each provider signs with its own webhook secret.
type WebhookTokenManager interface {
	VerifyToken(tokenString, secret string) error
}
