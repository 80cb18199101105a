package models

import "claimswitch-service/internal/pkg/constvars"

// claimStatusTransitions is the claim lifecycle. PROCESSING is only left by
// the orchestrator (adjudication outcome or FAILED compensation); every later
// transition comes from staff updates or provider webhooks.
var claimStatusTransitions = map[string][]string{
	constvars.ClaimStatusProcessing: {
		constvars.ClaimStatusApproved,
		constvars.ClaimStatusPendingReview,
		constvars.ClaimStatusPendingPatientAuth,
		constvars.ClaimStatusFailed,
	},
	constvars.ClaimStatusPendingReview: {
		constvars.ClaimStatusApproved,
		constvars.ClaimStatusRejected,
	},
	constvars.ClaimStatusPendingPatientAuth: {
		constvars.ClaimStatusClaimSubmitted,
	},
	constvars.ClaimStatusClaimSubmitted: {
		constvars.ClaimStatusApproved,
		constvars.ClaimStatusRejected,
		constvars.ClaimStatusPaid,
	},
	constvars.ClaimStatusApproved: {
		constvars.ClaimStatusPaid,
	},
}

// CanTransitionClaimStatus reports whether a claim may move between the two
// statuses. PAID, REJECTED and FAILED are terminal.
func CanTransitionClaimStatus(from, to string) bool {
	for _, allowed := range claimStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsTerminalClaimStatus(status string) bool {
	return len(claimStatusTransitions[status]) == 0
}
