package models

import "encoding/json"

// ProviderSubmissionResult is the adjudication outcome returned by a provider
// gateway, real or simulated.
type ProviderSubmissionResult struct {
	Success               bool
	Status                string
	ProviderClaimID       string
	AuthorizationNumber   string
	ApprovalCode          string
	CoveredAmount         *float64
	PatientResponsibility *float64
	Message               string
	Raw                   json.RawMessage
}

type MembershipValidationResult struct {
	Valid    bool
	Message  string
	Benefits *MembershipBenefitSummary
}

type MembershipBenefitSummary struct {
	AnnualLimit             float64
	RemainingBenefit        float64
	CopaymentPercentage     float64
	ChronicMedicinesCovered bool
}
