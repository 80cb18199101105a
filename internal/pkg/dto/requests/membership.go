package requests

type ValidateMembershipRequest struct {
	ProviderID       int64  `json:"providerId" validate:"required"`
	MembershipNumber string `json:"membershipNumber" validate:"required"`
	DependentCode    string `json:"dependentCode,omitempty"`
}
