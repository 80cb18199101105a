package claims

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/queries"
)

type claimPostgresRepository struct {
	DB *sql.DB
}

func NewClaimPostgresRepository(db *sql.DB) contracts.ClaimRepository {
	return &claimPostgresRepository{
		DB: db,
	}
}

func (repo *claimPostgresRepository) FindByID(ctx context.Context, claimID int64) (*models.Claim, error) {
	claim, err := scanClaim(repo.DB.QueryRowContext(ctx, queries.GetClaimByID, claimID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return claim, nil
}

func (repo *claimPostgresRepository) FindByClaimNumber(ctx context.Context, claimNumber string) (*models.Claim, error) {
	claim, err := scanClaim(repo.DB.QueryRowContext(ctx, queries.GetClaimByNumber, claimNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return claim, nil
}

func (repo *claimPostgresRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Claim, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetClaimsByPatientID, patientID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var claims []models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		claims = append(claims, *claim)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return claims, nil
}

func (repo *claimPostgresRepository) CreateClaim(ctx context.Context, claim *models.Claim) (*models.Claim, error) {
	submissionData, err := json.Marshal(claim.SubmissionData)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	created, err := scanClaim(repo.DB.QueryRowContext(ctx, queries.InsertClaim,
		claim.ClaimNumber,
		claim.PatientID,
		claim.ProviderID,
		claim.OrderID,
		claim.PrescriptionID,
		claim.MembershipNumber,
		nullString(claim.DependentCode),
		claim.TotalAmount,
		claim.Status,
		claim.IsDirectSubmission,
		claim.IntegrationStatus,
		submissionData,
	))
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return created, nil
}

// UpdateClaim is a compare-and-swap on claim.Version. Claims are never
// deleted, so zero matched rows always means a concurrent writer won.
func (repo *claimPostgresRepository) UpdateClaim(ctx context.Context, claim *models.Claim) (*models.Claim, error) {
	var responseData interface{}
	if len(claim.ResponseData) > 0 {
		responseData = []byte(claim.ResponseData)
	}

	updated, err := scanClaim(repo.DB.QueryRowContext(ctx, queries.UpdateClaim,
		claim.Status,
		claim.IntegrationStatus,
		claim.CoveredAmount,
		claim.PatientResponsibility,
		nullString(claim.ApprovalCode),
		nullString(claim.AuthorizationNumber),
		nullString(claim.RejectionReason),
		responseData,
		claim.ProcessingDurationMs,
		claim.AutoProcessed,
		claim.RealTimeValidated,
		claim.WebhookReceived,
		claim.ID,
		claim.Version,
	))
	if err == sql.ErrNoRows {
		return nil, exceptions.ErrClaimVersionConflict(fmt.Errorf("claim %d version %d no longer current", claim.ID, claim.Version))
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*models.Claim, error) {
	var claim models.Claim
	var orderID, prescriptionID, processingDurationMs sql.NullInt64
	var dependentCode, approvalCode, authorizationNumber, rejectionReason sql.NullString
	var coveredAmount, patientResponsibility sql.NullFloat64
	var submissionData, responseData []byte

	err := row.Scan(
		&claim.ID,
		&claim.ClaimNumber,
		&claim.PatientID,
		&claim.ProviderID,
		&orderID,
		&prescriptionID,
		&claim.MembershipNumber,
		&dependentCode,
		&claim.TotalAmount,
		&claim.Status,
		&claim.IsDirectSubmission,
		&claim.IntegrationStatus,
		&coveredAmount,
		&patientResponsibility,
		&approvalCode,
		&authorizationNumber,
		&rejectionReason,
		&submissionData,
		&responseData,
		&processingDurationMs,
		&claim.AutoProcessed,
		&claim.RealTimeValidated,
		&claim.WebhookReceived,
		&claim.Version,
		&claim.ClaimDate,
		&claim.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if orderID.Valid {
		claim.OrderID = &orderID.Int64
	}
	if prescriptionID.Valid {
		claim.PrescriptionID = &prescriptionID.Int64
	}
	if processingDurationMs.Valid {
		claim.ProcessingDurationMs = &processingDurationMs.Int64
	}
	if coveredAmount.Valid {
		claim.CoveredAmount = &coveredAmount.Float64
	}
	if patientResponsibility.Valid {
		claim.PatientResponsibility = &patientResponsibility.Float64
	}
	claim.DependentCode = dependentCode.String
	claim.ApprovalCode = approvalCode.String
	claim.AuthorizationNumber = authorizationNumber.String
	claim.RejectionReason = rejectionReason.String

	if len(submissionData) > 0 {
		if err := json.Unmarshal(submissionData, &claim.SubmissionData); err != nil {
			return nil, err
		}
	}
	if len(responseData) > 0 {
		claim.ResponseData = json.RawMessage(responseData)
	}

	return &claim, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
