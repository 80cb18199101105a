package requests

type CreateProviderRequest struct {
	Code                 string  `json:"code" validate:"required,alphanum,min=2,max=10"`
	Name                 string  `json:"name" validate:"required"`
	SupportsDirectClaims bool    `json:"supportsDirectClaims"`
	APIEndpoint          string  `json:"apiEndpoint,omitempty" validate:"omitempty,url"`
	AutoApprovalLimit    float64 `json:"autoApprovalLimit,omitempty" validate:"omitempty,gte=0"`
	TestMode             bool    `json:"testMode"`
	RealTimeValidation   bool    `json:"realTimeValidation"`
	WebhookSecret        string  `json:"webhookSecret,omitempty" validate:"omitempty,min=16"`
}

type UpdateProviderRequest struct {
	Name                 string  `json:"name" validate:"required"`
	SupportsDirectClaims bool    `json:"supportsDirectClaims"`
	APIEndpoint          string  `json:"apiEndpoint,omitempty" validate:"omitempty,url"`
	AutoApprovalLimit    float64 `json:"autoApprovalLimit,omitempty" validate:"omitempty,gte=0"`
	TestMode             bool    `json:"testMode"`
	RealTimeValidation   bool    `json:"realTimeValidation"`
	WebhookSecret        string  `json:"webhookSecret,omitempty" validate:"omitempty,min=16"`
}
