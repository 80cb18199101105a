package responses

import "time"

// DirectClaimResponse is the submission outcome returned to the caller. The
// same shape covers the approved, review, manual and error paths; optional
// fields are omitted when the path does not produce them.
type DirectClaimResponse struct {
	Success               bool     `json:"success"`
	ClaimID               int64    `json:"claimId,omitempty"`
	ClaimNumber           string   `json:"claimNumber,omitempty"`
	ProviderClaimID       string   `json:"providerClaimId,omitempty"`
	AuthorizationNumber   string   `json:"authorizationNumber,omitempty"`
	Status                string   `json:"status"`
	Message               string   `json:"message,omitempty"`
	ProcessingTime        int64    `json:"processingTime"`
	CoveredAmount         *float64 `json:"coveredAmount,omitempty"`
	PatientResponsibility *float64 `json:"patientResponsibility,omitempty"`
	ApprovalCode          string   `json:"approvalCode,omitempty"`
	Errors                []string `json:"errors,omitempty"`
}

type ClaimStatusResponse struct {
	ClaimNumber string    `json:"claimNumber"`
	Status      string    `json:"status"`
	ClaimDate   time.Time `json:"claimDate"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ClaimNotFoundResponse struct {
	Found bool `json:"found"`
}

// ClaimResponse is the full claim view used by staff endpoints.
type ClaimResponse struct {
	ID                    int64     `json:"id"`
	ClaimNumber           string    `json:"claimNumber"`
	PatientID             int64     `json:"patientId"`
	ProviderID            int64     `json:"providerId"`
	MembershipNumber      string    `json:"membershipNumber"`
	DependentCode         string    `json:"dependentCode,omitempty"`
	TotalAmount           float64   `json:"totalAmount"`
	Status                string    `json:"status"`
	IsDirectSubmission    bool      `json:"isDirectSubmission"`
	IntegrationStatus     string    `json:"integrationStatus"`
	CoveredAmount         *float64  `json:"coveredAmount,omitempty"`
	PatientResponsibility *float64  `json:"patientResponsibility,omitempty"`
	ApprovalCode          string    `json:"approvalCode,omitempty"`
	AuthorizationNumber   string    `json:"authorizationNumber,omitempty"`
	RejectionReason       string    `json:"rejectionReason,omitempty"`
	ProcessingDurationMs  *int64    `json:"processingDurationMs,omitempty"`
	WebhookReceived       bool      `json:"webhookReceived"`
	ClaimDate             time.Time `json:"claimDate"`
	LastUpdated           time.Time `json:"lastUpdated"`
}
