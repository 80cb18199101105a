package models

import (
	"encoding/json"
	"time"
)

// Claim is one patient's reimbursement request for a set of dispensed items.
// Claims are never deleted; the row carries only the last state while the
// claim_events collection keeps the full transition history.
type Claim struct {
	ID                    int64               `json:"id"`
	ClaimNumber           string              `json:"claim_number"`
	PatientID             int64               `json:"patient_id"`
	ProviderID            int64               `json:"provider_id"`
	OrderID               *int64              `json:"order_id,omitempty"`
	PrescriptionID        *int64              `json:"prescription_id,omitempty"`
	MembershipNumber      string              `json:"membership_number"`
	DependentCode         string              `json:"dependent_code,omitempty"`
	TotalAmount           float64             `json:"total_amount"`
	Status                string              `json:"status"`
	IsDirectSubmission    bool                `json:"is_direct_submission"`
	IntegrationStatus     string              `json:"integration_status"`
	CoveredAmount         *float64            `json:"covered_amount,omitempty"`
	PatientResponsibility *float64            `json:"patient_responsibility,omitempty"`
	ApprovalCode          string              `json:"approval_code,omitempty"`
	AuthorizationNumber   string              `json:"authorization_number,omitempty"`
	RejectionReason       string              `json:"rejection_reason,omitempty"`
	SubmissionData        ClaimSubmissionData `json:"submission_data"`
	ResponseData          json.RawMessage     `json:"response_data,omitempty"`
	ProcessingDurationMs  *int64              `json:"processing_duration_ms,omitempty"`
	AutoProcessed         bool                `json:"auto_processed"`
	RealTimeValidated     bool                `json:"real_time_validated"`
	WebhookReceived       bool                `json:"webhook_received"`
	Version               int64               `json:"version"`
	ClaimDate             time.Time           `json:"claim_date"`
	LastUpdated           time.Time           `json:"last_updated"`
}

// ClaimSubmissionData is the coded submission payload persisted alongside the
// claim and forwarded to the provider.
type ClaimSubmissionData struct {
	Items         []ClaimItem `json:"items"`
	BenefitType   string      `json:"benefit_type,omitempty"`
	DiagnosisCode string      `json:"diagnosis_code,omitempty"`
	TreatmentCode string      `json:"treatment_code,omitempty"`
	ServiceDate   string      `json:"service_date,omitempty"`
}

type ClaimItem struct {
	MedicineID   int64   `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
	NappiCode    string  `json:"nappi_code,omitempty"`
	Dosage       string  `json:"dosage,omitempty"`
}
