package contracts

import (
	"context"

	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
)

type ClaimRepository interface {
	FindByID(ctx context.Context, claimID int64) (*models.Claim, error)
	FindByClaimNumber(ctx context.Context, claimNumber string) (*models.Claim, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]models.Claim, error)
	CreateClaim(ctx context.Context, claim *models.Claim) (*models.Claim, error)
	// UpdateClaim applies the claim's mutable fields with a compare-and-swap
	// on claim.Version and returns ErrClaimVersionConflict when the row moved.
	UpdateClaim(ctx context.Context, claim *models.Claim) (*models.Claim, error)
}

type ClaimUsecase interface {
	SubmitDirectClaim(ctx context.Context, request *requests.SubmitDirectClaimRequest) (*responses.DirectClaimResponse, error)
	// GetClaimStatus returns (nil, nil) when no claim carries the number.
	GetClaimStatus(ctx context.Context, claimNumber string) (*responses.ClaimStatusResponse, error)
	UpdateClaimStatus(ctx context.Context, claimNumber string, request *requests.UpdateClaimStatusRequest) (*responses.ClaimResponse, error)
	GetClaimsByPatient(ctx context.Context, patientID int64) ([]responses.ClaimResponse, error)
}
