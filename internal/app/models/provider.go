package models

import "time"

// Provider is a medical aid scheme configuration. Read-mostly during claim
// processing; mutated only by administrative actions.
type Provider struct {
	ID                   int64     `json:"id"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	SupportsDirectClaims bool      `json:"supports_direct_claims"`
	APIEndpoint          string    `json:"api_endpoint,omitempty"`
	AutoApprovalLimit    *float64  `json:"auto_approval_limit,omitempty"`
	TestMode             bool      `json:"test_mode"`
	RealTimeValidation   bool      `json:"real_time_validation"`
	WebhookSecret        string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// EffectiveAutoApprovalLimit falls back to the platform default when the
// provider has no configured limit.
func (p *Provider) EffectiveAutoApprovalLimit(defaultLimit float64) float64 {
	if p.AutoApprovalLimit == nil {
		return defaultLimit
	}
	return *p.AutoApprovalLimit
}
