package responses

import "time"

// ProviderResponse never carries the webhook secret.
type ProviderResponse struct {
	ID                   int64     `json:"id"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	SupportsDirectClaims bool      `json:"supportsDirectClaims"`
	APIEndpoint          string    `json:"apiEndpoint,omitempty"`
	AutoApprovalLimit    float64   `json:"autoApprovalLimit"`
	TestMode             bool      `json:"testMode"`
	RealTimeValidation   bool      `json:"realTimeValidation"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
