package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// simulatorGateway stands in for providers without a live endpoint and for
// providers in test mode. It models scheme adjudication: randomized latency,
// threshold-based auto approval and a canned benefit summary.
type simulatorGateway struct {
	log        *zap.Logger
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatorGateway(log *zap.Logger, minLatency, maxLatency time.Duration) contracts.ProviderGateway {
	return &simulatorGateway{
		log:        log,
		minLatency: minLatency,
		maxLatency: maxLatency,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *simulatorGateway) SubmitClaim(ctx context.Context, provider *models.Provider, claim *models.Claim) (*models.ProviderSubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.log.Info("simulatorGateway.SubmitClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, provider.Code),
		zap.String(constvars.LoggingClaimNumberKey, claim.ClaimNumber),
	)

	if err := g.sleep(ctx); err != nil {
		return nil, err
	}

	limit := provider.EffectiveAutoApprovalLimit(constvars.DefaultAutoApprovalLimit)
	providerClaimID := fmt.Sprintf("%s-%d", provider.Code, g.intn(900000)+100000)

	result := &models.ProviderSubmissionResult{
		Success:         true,
		ProviderClaimID: providerClaimID,
	}

	if claim.TotalAmount <= limit {
		// The draw is half-open at the upper bound; rounding to cents can
		// still land the covered amount on it.
		span := constvars.MaxCoveragePercentage - constvars.MinCoveragePercentage
		coveragePercentage := constvars.MinCoveragePercentage + g.float64()*span
		coveredAmount := utils.RoundMoney(claim.TotalAmount * coveragePercentage)
		patientResponsibility := utils.RoundMoney(claim.TotalAmount - coveredAmount)

		result.Status = constvars.ClaimStatusApproved
		result.CoveredAmount = &coveredAmount
		result.PatientResponsibility = &patientResponsibility
		result.AuthorizationNumber = "AUTH-" + claim.ClaimNumber
		result.ApprovalCode = fmt.Sprintf("APR%06d", g.intn(1000000))
		result.Message = "Claim approved"
	} else {
		result.Status = constvars.ClaimStatusPendingReview
		result.AuthorizationNumber = "REV-" + claim.ClaimNumber
		result.Message = "Claim routed for manual review"
	}

	result.Raw, _ = json.Marshal(map[string]interface{}{
		"providerClaimId":     result.ProviderClaimID,
		"authorizationNumber": result.AuthorizationNumber,
		"status":              result.Status,
	})
	return result, nil
}

func (g *simulatorGateway) ValidateMembership(ctx context.Context, provider *models.Provider, membershipNumber, dependentCode string) (*models.MembershipValidationResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.log.Info("simulatorGateway.ValidateMembership called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, provider.Code),
	)

	if err := g.sleep(ctx); err != nil {
		return nil, err
	}

	// Nine of ten membership checks pass in simulation.
	if g.float64() < 0.9 {
		return &models.MembershipValidationResult{
			Valid:   true,
			Message: constvars.MembershipValidatedSuccessMessage,
			Benefits: &models.MembershipBenefitSummary{
				AnnualLimit:             25000,
				RemainingBenefit:        utils.RoundMoney(5000 + g.float64()*15000),
				CopaymentPercentage:     10,
				ChronicMedicinesCovered: true,
			},
		}, nil
	}

	return &models.MembershipValidationResult{
		Valid:   false,
		Message: constvars.ErrClientMembershipInvalid,
	}, nil
}

func (g *simulatorGateway) sleep(ctx context.Context) error {
	latency := g.minLatency
	if g.maxLatency > g.minLatency {
		latency += time.Duration(g.int63n(int64(g.maxLatency - g.minLatency)))
	}
	if latency <= 0 {
		return nil
	}

	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *simulatorGateway) float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

func (g *simulatorGateway) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func (g *simulatorGateway) int63n(n int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Int63n(n)
}
