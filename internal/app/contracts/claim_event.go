package contracts

import (
	"context"

	"claimswitch-service/internal/app/models"
)

// ClaimEventRepository is the append-only claim audit trail.
type ClaimEventRepository interface {
	AppendEvent(ctx context.Context, event *models.ClaimEvent) error
	FindByClaimNumber(ctx context.Context, claimNumber string) ([]models.ClaimEvent, error)
}
