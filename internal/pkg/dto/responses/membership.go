package responses

type MembershipValidationResponse struct {
	Valid    bool                `json:"valid"`
	Message  string              `json:"message"`
	Benefits *MembershipBenefits `json:"benefits,omitempty"`
}

type MembershipBenefits struct {
	AnnualLimit             float64 `json:"annualLimit"`
	RemainingBenefit        float64 `json:"remainingBenefit"`
	CopaymentPercentage     float64 `json:"copaymentPercentage"`
	ChronicMedicinesCovered bool    `json:"chronicMedicinesCovered"`
}
