package requests

// SubmitDirectClaimRequest is the payload accepted by /claims/submit-direct.
// Items may be empty; providers receive whatever the pharmacy captured and do
// their own line-level adjudication.
type SubmitDirectClaimRequest struct {
	PatientID        int64   `json:"patientId" validate:"required"`
	ProviderID       int64   `json:"providerId" validate:"required"`
	OrderID          *int64  `json:"orderId,omitempty"`
	PrescriptionID   *int64  `json:"prescriptionId,omitempty"`
	MembershipNumber string  `json:"membershipNumber" validate:"required"`
	DependentCode    string  `json:"dependentCode,omitempty"`
	TotalAmount      float64 `json:"totalAmount" validate:"required,gt=0"`
	BenefitType      string  `json:"benefitType,omitempty"`
	DiagnosisCode    string  `json:"diagnosisCode,omitempty"`
	TreatmentCode    string  `json:"treatmentCode,omitempty"`
	ServiceDate      string  `json:"serviceDate,omitempty"`

	Items []ClaimItem `json:"items" validate:"omitempty,dive"`
}

// ClaimItem is one dispensed line carried inside the claim submission payload.
type ClaimItem struct {
	MedicineID   int64   `json:"medicineId" validate:"required"`
	MedicineName string  `json:"medicineName" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64 `json:"unitPrice" validate:"gte=0"`
	TotalPrice   float64 `json:"totalPrice" validate:"gte=0"`
	NappiCode    string  `json:"nappiCode,omitempty"`
	Dosage       string  `json:"dosage,omitempty"`
}

// UpdateClaimStatusRequest drives staff-managed claim transitions.
type UpdateClaimStatusRequest struct {
	Status                string   `json:"status" validate:"required,oneof=APPROVED REJECTED CLAIM_SUBMITTED PAID"`
	CoveredAmount         *float64 `json:"coveredAmount,omitempty" validate:"omitempty,gte=0"`
	PatientResponsibility *float64 `json:"patientResponsibility,omitempty" validate:"omitempty,gte=0"`
	ApprovalCode          string   `json:"approvalCode,omitempty"`
	RejectionReason       string   `json:"rejectionReason,omitempty"`
}
