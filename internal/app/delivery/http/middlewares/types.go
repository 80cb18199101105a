package middlewares

import (
	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log                 *zap.Logger
	ProviderRepository  contracts.ProviderRepository
	WebhookTokenManager contracts.WebhookTokenManager
	InternalConfig      *config.InternalConfig
}
