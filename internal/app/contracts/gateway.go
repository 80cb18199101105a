package contracts

import (
	"context"

	"claimswitch-service/internal/app/models"
)

// ProviderGateway is the outbound integration with a medical aid scheme.
// Wiring selects the HTTP implementation or the simulator per provider; the
// orchestrator never branches on test mode itself.
type ProviderGateway interface {
	SubmitClaim(ctx context.Context, provider *models.Provider, claim *models.Claim) (*models.ProviderSubmissionResult, error)
	ValidateMembership(ctx context.Context, provider *models.Provider, membershipNumber, dependentCode string) (*models.MembershipValidationResult, error)
}

// GatewaySelector picks the gateway implementation for a provider.
type GatewaySelector interface {
	GatewayFor(provider *models.Provider) ProviderGateway
}
