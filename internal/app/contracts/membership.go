package contracts

import (
	"context"

	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
)

type MembershipUsecase interface {
	// ValidateMembership never fails the caller; gateway trouble comes back
	// as {valid:false, message:"Validation service unavailable"}.
	ValidateMembership(ctx context.Context, request *requests.ValidateMembershipRequest) (*responses.MembershipValidationResponse, error)
}
