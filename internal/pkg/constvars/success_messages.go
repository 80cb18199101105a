package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "Success"

	ClaimSubmittedSuccessMessage      = "Claim submitted successfully"
	ClaimManualProcessingMessage      = "Claim created for manual processing - provider does not support direct integration"
	ClaimStatusUpdatedSuccessMessage  = "Claim status updated successfully"
	MembershipValidatedSuccessMessage = "Membership validated"
	WebhookAcceptedMessage            = "Webhook accepted for processing"
	ProviderCreatedSuccessMessage     = "Provider created successfully"
	ProviderUpdatedSuccessMessage     = "Provider updated successfully"
	MembershipNoRealTimeMessage       = "Real-time validation not available"

	ClaimProviderUnavailableMessage = "Provider temporarily unavailable - claim routed for manual review"
)
