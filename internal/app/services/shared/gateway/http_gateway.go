package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// httpGateway talks to a provider's live claims API. A shared rate limiter
// keeps the service from hammering scheme endpoints during claim bursts.
type httpGateway struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewHTTPGateway(log *zap.Logger, timeout time.Duration, requestsPerSecond float64) contracts.ProviderGateway {
	return &httpGateway{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)+1),
		log:     log,
	}
}

type providerClaimPayload struct {
	ClaimNumber      string              `json:"claimNumber"`
	MembershipNumber string              `json:"membershipNumber"`
	DependentCode    string              `json:"dependentCode,omitempty"`
	TotalAmount      float64             `json:"totalAmount"`
	Items            []models.ClaimItem  `json:"items"`
	BenefitType      string              `json:"benefitType,omitempty"`
	DiagnosisCode    string              `json:"diagnosisCode,omitempty"`
	TreatmentCode    string              `json:"treatmentCode,omitempty"`
	ServiceDate      string              `json:"serviceDate,omitempty"`
}

type providerClaimResponse struct {
	Success               bool     `json:"success"`
	Status                string   `json:"status"`
	ProviderClaimID       string   `json:"providerClaimId"`
	AuthorizationNumber   string   `json:"authorizationNumber"`
	ApprovalCode          string   `json:"approvalCode"`
	CoveredAmount         *float64 `json:"coveredAmount"`
	PatientResponsibility *float64 `json:"patientResponsibility"`
	Message               string   `json:"message"`
}

type membershipValidationPayload struct {
	MembershipNumber string `json:"membershipNumber"`
	DependentCode    string `json:"dependentCode,omitempty"`
}

type membershipValidationResponse struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Benefits *struct {
		AnnualLimit             float64 `json:"annualLimit"`
		RemainingBenefit        float64 `json:"remainingBenefit"`
		CopaymentPercentage     float64 `json:"copaymentPercentage"`
		ChronicMedicinesCovered bool    `json:"chronicMedicinesCovered"`
	} `json:"benefits"`
}

func (g *httpGateway) SubmitClaim(ctx context.Context, provider *models.Provider, claim *models.Claim) (*models.ProviderSubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.log.Info("httpGateway.SubmitClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, provider.Code),
		zap.String(constvars.LoggingClaimNumberKey, claim.ClaimNumber),
	)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrGatewaySubmitClaim(err)
	}

	payload := providerClaimPayload{
		ClaimNumber:      claim.ClaimNumber,
		MembershipNumber: claim.MembershipNumber,
		DependentCode:    claim.DependentCode,
		TotalAmount:      claim.TotalAmount,
		Items:            claim.SubmissionData.Items,
		BenefitType:      claim.SubmissionData.BenefitType,
		DiagnosisCode:    claim.SubmissionData.DiagnosisCode,
		TreatmentCode:    claim.SubmissionData.TreatmentCode,
		ServiceDate:      claim.SubmissionData.ServiceDate,
	}
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, fmt.Sprintf("%s/claims", provider.APIEndpoint), bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, exceptions.ErrGatewaySubmitClaim(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var decoded providerClaimResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, exceptions.ErrGatewaySubmitClaim(err)
	}

	raw, _ := json.Marshal(decoded)
	return &models.ProviderSubmissionResult{
		Success:               decoded.Success,
		Status:                decoded.Status,
		ProviderClaimID:       decoded.ProviderClaimID,
		AuthorizationNumber:   decoded.AuthorizationNumber,
		ApprovalCode:          decoded.ApprovalCode,
		CoveredAmount:         decoded.CoveredAmount,
		PatientResponsibility: decoded.PatientResponsibility,
		Message:               decoded.Message,
		Raw:                   raw,
	}, nil
}

func (g *httpGateway) ValidateMembership(ctx context.Context, provider *models.Provider, membershipNumber, dependentCode string) (*models.MembershipValidationResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.log.Info("httpGateway.ValidateMembership called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, provider.Code),
	)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrGatewayValidateMembership(err)
	}

	requestJSON, err := json.Marshal(membershipValidationPayload{
		MembershipNumber: membershipNumber,
		DependentCode:    dependentCode,
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, fmt.Sprintf("%s/membership/validate", provider.APIEndpoint), bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, exceptions.ErrGatewayValidateMembership(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var decoded membershipValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, exceptions.ErrGatewayValidateMembership(err)
	}

	result := &models.MembershipValidationResult{
		Valid:   decoded.Valid,
		Message: decoded.Message,
	}
	if decoded.Benefits != nil {
		result.Benefits = &models.MembershipBenefitSummary{
			AnnualLimit:             decoded.Benefits.AnnualLimit,
			RemainingBenefit:        decoded.Benefits.RemainingBenefit,
			CopaymentPercentage:     decoded.Benefits.CopaymentPercentage,
			ChronicMedicinesCovered: decoded.Benefits.ChronicMedicinesCovered,
		}
	}
	return result, nil
}
