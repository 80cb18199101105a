package requests

import "encoding/json"

// ProviderWebhookRequest is the callback body providers POST after
// asynchronous claim adjudication. ClaimNumber and ReferenceNumber are
// interchangeable; at least one must be present.
type ProviderWebhookRequest struct {
	ClaimNumber           string          `json:"claimNumber,omitempty"`
	ReferenceNumber       string          `json:"referenceNumber,omitempty"`
	Status                string          `json:"status" validate:"required"`
	CoveredAmount         *float64        `json:"coveredAmount,omitempty" validate:"omitempty,gte=0"`
	PatientResponsibility *float64        `json:"patientResponsibility,omitempty" validate:"omitempty,gte=0"`
	ApprovalCode          string          `json:"approvalCode,omitempty"`
	RejectionReason       string          `json:"rejectionReason,omitempty"`
	EventTime             string          `json:"eventTime,omitempty"`
	Extra                 json.RawMessage `json:"extra,omitempty"`
}

// ClaimRef returns whichever claim reference the provider supplied.
func (r *ProviderWebhookRequest) ClaimRef() string {
	if r.ClaimNumber != "" {
		return r.ClaimNumber
	}
	return r.ReferenceNumber
}
