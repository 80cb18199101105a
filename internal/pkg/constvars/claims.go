package constvars

// Claim lifecycle statuses. The orchestrator only drives the transition out of
// PROCESSING; later transitions come from staff updates or provider webhooks.
const (
	ClaimStatusProcessing         = "PROCESSING"
	ClaimStatusApproved           = "APPROVED"
	ClaimStatusPendingReview      = "PENDING_REVIEW"
	ClaimStatusPendingPatientAuth = "PENDING_PATIENT_AUTH"
	ClaimStatusClaimSubmitted     = "CLAIM_SUBMITTED"
	ClaimStatusRejected           = "REJECTED"
	ClaimStatusPaid               = "PAID"
	ClaimStatusFailed             = "FAILED"
)

const (
	IntegrationStatusSubmitting = "SUBMITTING"
	IntegrationStatusSuccess    = "SUCCESS"
	IntegrationStatusFailed     = "FAILED"
	IntegrationStatusManual     = "MANUAL"
)

const (
	// ManualProviderCode is the reserved provider code used in claim numbers
	// generated on the manual fallback path.
	ManualProviderCode = "MAN"

	ClaimNumberPrefix       = "CLM"
	ClaimNumberMonthLayout  = "200601"
	ClaimNumberSuffixDigits = 6
)

// Response-only statuses returned by the submission endpoint.
const (
	ClaimResponseStatusError            = "ERROR"
	ClaimResponseStatusManualProcessing = "MANUAL_PROCESSING"
)

const (
	RedisClaimLockKeyFormat    = "lock:claim:%s"
	RedisCallbackWorkerLockKey = "lock:claim-callback-worker"
)

// Claim event sources recorded on the audit trail.
const (
	ClaimEventSourceOrchestrator = "ORCHESTRATOR"
	ClaimEventSourceWebhook      = "WEBHOOK"
	ClaimEventSourceStaff        = "STAFF"
)

const (
	// DefaultAutoApprovalLimit applies when a provider has no configured limit.
	DefaultAutoApprovalLimit = 1000.0

	// Simulated coverage percentage bounds for auto-approved claims.
	MinCoveragePercentage = 0.80
	MaxCoveragePercentage = 0.95
)
