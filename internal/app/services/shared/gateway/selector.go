package gateway

import (
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
)

type gatewaySelector struct {
	live      contracts.ProviderGateway
	simulator contracts.ProviderGateway
}

// NewGatewaySelector routes providers in test mode, or without a live
// endpoint, to the simulator. Business logic never branches on test mode.
func NewGatewaySelector(live, simulator contracts.ProviderGateway) contracts.GatewaySelector {
	return &gatewaySelector{live: live, simulator: simulator}
}

func (s *gatewaySelector) GatewayFor(provider *models.Provider) contracts.ProviderGateway {
	if provider.TestMode || provider.APIEndpoint == "" {
		return s.simulator
	}
	return s.live
}
