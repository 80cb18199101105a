package gateway

import (
	"context"
	"strings"
	"testing"
	"time"

	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func simulatorProvider(limit float64) *models.Provider {
	return &models.Provider{
		ID:                int64(7),
		Code:              "DSC",
		Name:              "Discovery Health",
		TestMode:          true,
		AutoApprovalLimit: &limit,
	}
}

func simulatorClaim(totalAmount float64) *models.Claim {
	return &models.Claim{
		ClaimNumber:      "CLM-DSC-202609-000123",
		MembershipNumber: "MEM-001122",
		TotalAmount:      totalAmount,
	}
}

func TestSimulatorSubmitClaim_WithinLimitApproves(t *testing.T) {
	sim := NewSimulatorGateway(zap.NewNop(), 0, 0)

	for i := 0; i < 200; i++ {
		result, err := sim.SubmitClaim(context.Background(), simulatorProvider(1000), simulatorClaim(150.0))
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, constvars.ClaimStatusApproved, result.Status)
		assert.Equal(t, "AUTH-CLM-DSC-202609-000123", result.AuthorizationNumber)
		assert.True(t, strings.HasPrefix(result.ApprovalCode, "APR"))

		require.NotNil(t, result.CoveredAmount)
		require.NotNil(t, result.PatientResponsibility)
		coverage := *result.CoveredAmount / 150.0
		assert.GreaterOrEqual(t, coverage, 0.79, "coverage stays at or above the lower bound after rounding")
		assert.LessOrEqual(t, coverage, 0.96, "coverage stays at or below the upper bound after rounding")
		assert.InDelta(t, 150.0, *result.CoveredAmount+*result.PatientResponsibility, 0.001,
			"covered plus patient share always reconstructs the claim total")
		assert.Equal(t, utils.RoundMoney(*result.CoveredAmount), *result.CoveredAmount, "amounts carry at most two decimals")
	}
}

func TestSimulatorSubmitClaim_OverLimitRoutesToReview(t *testing.T) {
	sim := NewSimulatorGateway(zap.NewNop(), 0, 0)

	result, err := sim.SubmitClaim(context.Background(), simulatorProvider(1000), simulatorClaim(5000.0))
	require.NoError(t, err)

	assert.Equal(t, constvars.ClaimStatusPendingReview, result.Status)
	assert.Equal(t, "REV-CLM-DSC-202609-000123", result.AuthorizationNumber)
	assert.Nil(t, result.CoveredAmount)
	assert.Nil(t, result.PatientResponsibility)
	assert.Empty(t, result.ApprovalCode)
}

func TestSimulatorSubmitClaim_DefaultLimitApplies(t *testing.T) {
	sim := NewSimulatorGateway(zap.NewNop(), 0, 0)
	provider := &models.Provider{ID: 7, Code: "DSC", TestMode: true}

	atLimit, err := sim.SubmitClaim(context.Background(), provider, simulatorClaim(constvars.DefaultAutoApprovalLimit))
	require.NoError(t, err)
	assert.Equal(t, constvars.ClaimStatusApproved, atLimit.Status, "a claim exactly at the limit is still auto approved")

	overLimit, err := sim.SubmitClaim(context.Background(), provider, simulatorClaim(constvars.DefaultAutoApprovalLimit+0.01))
	require.NoError(t, err)
	assert.Equal(t, constvars.ClaimStatusPendingReview, overLimit.Status)
}

func TestSimulatorSubmitClaim_CancelledContext(t *testing.T) {
	sim := NewSimulatorGateway(zap.NewNop(), 50*time.Millisecond, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.SubmitClaim(ctx, simulatorProvider(1000), simulatorClaim(150.0))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatorValidateMembership(t *testing.T) {
	sim := NewSimulatorGateway(zap.NewNop(), 0, 0)
	provider := simulatorProvider(1000)

	valid := 0
	for i := 0; i < 300; i++ {
		result, err := sim.ValidateMembership(context.Background(), provider, "MEM-001122", "")
		require.NoError(t, err)
		if result.Valid {
			valid++
			require.NotNil(t, result.Benefits)
			assert.Equal(t, 25000.0, result.Benefits.AnnualLimit)
		} else {
			assert.Equal(t, constvars.ErrClientMembershipInvalid, result.Message)
			assert.Nil(t, result.Benefits)
		}
	}
	// Nominal pass rate is 90 percent; a wide band keeps the test stable.
	assert.Greater(t, valid, 220)
	assert.Less(t, valid, 300)
}

func TestGatewaySelector(t *testing.T) {
	live := NewHTTPGateway(zap.NewNop(), time.Second, 10)
	sim := NewSimulatorGateway(zap.NewNop(), 0, 0)
	selector := NewGatewaySelector(live, sim)

	testModeProvider := &models.Provider{Code: "DSC", TestMode: true, APIEndpoint: "https://api.example"}
	assert.Same(t, sim, selector.GatewayFor(testModeProvider), "test mode always routes to the simulator")

	noEndpointProvider := &models.Provider{Code: "BON"}
	assert.Same(t, sim, selector.GatewayFor(noEndpointProvider), "providers without an endpoint cannot be called live")

	liveProvider := &models.Provider{Code: "MOM", APIEndpoint: "https://api.example"}
	assert.Same(t, live, selector.GatewayFor(liveProvider))
}
