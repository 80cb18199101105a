package models

import (
	"testing"

	"claimswitch-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionClaimStatus(t *testing.T) {
	allowed := []struct{ from, to string }{
		{constvars.ClaimStatusProcessing, constvars.ClaimStatusApproved},
		{constvars.ClaimStatusProcessing, constvars.ClaimStatusPendingReview},
		{constvars.ClaimStatusProcessing, constvars.ClaimStatusPendingPatientAuth},
		{constvars.ClaimStatusProcessing, constvars.ClaimStatusFailed},
		{constvars.ClaimStatusPendingReview, constvars.ClaimStatusApproved},
		{constvars.ClaimStatusPendingReview, constvars.ClaimStatusRejected},
		{constvars.ClaimStatusPendingPatientAuth, constvars.ClaimStatusClaimSubmitted},
		{constvars.ClaimStatusClaimSubmitted, constvars.ClaimStatusApproved},
		{constvars.ClaimStatusClaimSubmitted, constvars.ClaimStatusRejected},
		{constvars.ClaimStatusClaimSubmitted, constvars.ClaimStatusPaid},
		{constvars.ClaimStatusApproved, constvars.ClaimStatusPaid},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionClaimStatus(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{constvars.ClaimStatusPaid, constvars.ClaimStatusApproved},
		{constvars.ClaimStatusRejected, constvars.ClaimStatusApproved},
		{constvars.ClaimStatusFailed, constvars.ClaimStatusProcessing},
		{constvars.ClaimStatusApproved, constvars.ClaimStatusRejected},
		{constvars.ClaimStatusPendingPatientAuth, constvars.ClaimStatusPaid},
		{constvars.ClaimStatusPendingReview, constvars.ClaimStatusPaid},
		{constvars.ClaimStatusApproved, constvars.ClaimStatusProcessing},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionClaimStatus(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestIsTerminalClaimStatus(t *testing.T) {
	assert.True(t, IsTerminalClaimStatus(constvars.ClaimStatusPaid))
	assert.True(t, IsTerminalClaimStatus(constvars.ClaimStatusRejected))
	assert.True(t, IsTerminalClaimStatus(constvars.ClaimStatusFailed))

	assert.False(t, IsTerminalClaimStatus(constvars.ClaimStatusProcessing))
	assert.False(t, IsTerminalClaimStatus(constvars.ClaimStatusApproved))
	assert.False(t, IsTerminalClaimStatus(constvars.ClaimStatusPendingReview))
	assert.False(t, IsTerminalClaimStatus(constvars.ClaimStatusPendingPatientAuth))
	assert.False(t, IsTerminalClaimStatus(constvars.ClaimStatusClaimSubmitted))
}
