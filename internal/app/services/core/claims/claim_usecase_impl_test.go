package claims

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClaimRepository struct {
	claims       map[string]*models.Claim
	nextID       int64
	conflictOnce bool
	createErr    error
	updateErr    error
}

func newStubClaimRepository() *stubClaimRepository {
	return &stubClaimRepository{claims: make(map[string]*models.Claim)}
}

func (repo *stubClaimRepository) FindByID(_ context.Context, claimID int64) (*models.Claim, error) {
	for _, claim := range repo.claims {
		if claim.ID == claimID {
			copied := *claim
			return &copied, nil
		}
	}
	return nil, nil
}

func (repo *stubClaimRepository) FindByClaimNumber(_ context.Context, claimNumber string) (*models.Claim, error) {
	claim, ok := repo.claims[claimNumber]
	if !ok {
		return nil, nil
	}
	copied := *claim
	return &copied, nil
}

func (repo *stubClaimRepository) FindByPatientID(_ context.Context, patientID int64) ([]models.Claim, error) {
	var result []models.Claim
	for _, claim := range repo.claims {
		if claim.PatientID == patientID {
			result = append(result, *claim)
		}
	}
	return result, nil
}

func (repo *stubClaimRepository) CreateClaim(_ context.Context, claim *models.Claim) (*models.Claim, error) {
	if repo.createErr != nil {
		return nil, repo.createErr
	}
	repo.nextID++
	stored := *claim
	stored.ID = repo.nextID
	stored.Version = 1
	stored.ClaimDate = time.Now().UTC()
	stored.LastUpdated = stored.ClaimDate
	repo.claims[stored.ClaimNumber] = &stored
	copied := stored
	return &copied, nil
}

func (repo *stubClaimRepository) UpdateClaim(_ context.Context, claim *models.Claim) (*models.Claim, error) {
	if repo.updateErr != nil {
		return nil, repo.updateErr
	}
	stored, ok := repo.claims[claim.ClaimNumber]
	if !ok || stored.Version != claim.Version || repo.conflictOnce {
		repo.conflictOnce = false
		return nil, exceptions.ErrClaimVersionConflict(fmt.Errorf("claim %d version %d no longer current", claim.ID, claim.Version))
	}
	updated := *claim
	updated.Version = stored.Version + 1
	updated.LastUpdated = time.Now().UTC()
	repo.claims[updated.ClaimNumber] = &updated
	copied := updated
	return &copied, nil
}

type stubProviderRepository struct {
	provider *models.Provider
	err      error
}

func (repo *stubProviderRepository) FindAll(_ context.Context) ([]models.Provider, error) {
	if repo.provider == nil {
		return nil, nil
	}
	return []models.Provider{*repo.provider}, nil
}

func (repo *stubProviderRepository) FindByID(_ context.Context, providerID int64) (*models.Provider, error) {
	if repo.err != nil {
		return nil, repo.err
	}
	if repo.provider == nil || repo.provider.ID != providerID {
		return nil, nil
	}
	copied := *repo.provider
	return &copied, nil
}

func (repo *stubProviderRepository) FindByCode(_ context.Context, code string) (*models.Provider, error) {
	if repo.provider == nil || repo.provider.Code != code {
		return nil, nil
	}
	copied := *repo.provider
	return &copied, nil
}

func (repo *stubProviderRepository) CreateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

func (repo *stubProviderRepository) UpdateProvider(_ context.Context, provider *models.Provider) (*models.Provider, error) {
	return provider, nil
}

type stubEventRepository struct {
	events []models.ClaimEvent
}

func (repo *stubEventRepository) AppendEvent(_ context.Context, event *models.ClaimEvent) error {
	repo.events = append(repo.events, *event)
	return nil
}

func (repo *stubEventRepository) FindByClaimNumber(_ context.Context, claimNumber string) ([]models.ClaimEvent, error) {
	var result []models.ClaimEvent
	for _, event := range repo.events {
		if event.ClaimNumber == claimNumber {
			result = append(result, event)
		}
	}
	return result, nil
}

type stubGateway struct {
	result      *models.ProviderSubmissionResult
	failCount   int
	callCount   int
	lastClaim   *models.Claim
	submitError error
}

func (gw *stubGateway) SubmitClaim(_ context.Context, _ *models.Provider, claim *models.Claim) (*models.ProviderSubmissionResult, error) {
	gw.callCount++
	gw.lastClaim = claim
	if gw.callCount <= gw.failCount {
		return nil, exceptions.ErrGatewaySubmitClaim(errors.New("connection refused"))
	}
	if gw.submitError != nil {
		return nil, gw.submitError
	}
	return gw.result, nil
}

func (gw *stubGateway) ValidateMembership(_ context.Context, _ *models.Provider, _, _ string) (*models.MembershipValidationResult, error) {
	return &models.MembershipValidationResult{Valid: true}, nil
}

type stubSelector struct {
	gateway contracts.ProviderGateway
}

func (sel *stubSelector) GatewayFor(_ *models.Provider) contracts.ProviderGateway {
	return sel.gateway
}

type stubLocker struct {
	denyLock bool
}

func (lock *stubLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	if lock.denyLock {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (lock *stubLocker) Unlock(_ context.Context, _, _ string) error {
	return nil
}

func (lock *stubLocker) Refresh(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}

func directProvider() *models.Provider {
	limit := 1000.0
	return &models.Provider{
		ID:                   7,
		Code:                 "DSC",
		Name:                 "Discovery Health",
		SupportsDirectClaims: true,
		APIEndpoint:          "https://api.discovery.example/claims/v1",
		AutoApprovalLimit:    &limit,
		RealTimeValidation:   true,
	}
}

func manualProvider() *models.Provider {
	return &models.Provider{
		ID:   9,
		Code: "BON",
		Name: "Bonitas Medical Fund",
	}
}

type usecaseFixture struct {
	usecase   *claimUsecase
	claimRepo *stubClaimRepository
	events    *stubEventRepository
	gateway   *stubGateway
	locker    *stubLocker
}

func newUsecaseFixture(provider *models.Provider, gateway *stubGateway) *usecaseFixture {
	claimRepo := newStubClaimRepository()
	events := &stubEventRepository{}
	locker := &stubLocker{}
	uc := &claimUsecase{
		ClaimRepository:      claimRepo,
		ProviderRepository:   &stubProviderRepository{provider: provider},
		ClaimEventRepository: events,
		GatewaySelector:      &stubSelector{gateway: gateway},
		Locker:               locker,
		InternalConfig: &config.InternalConfig{
			Claims: config.Claims{
				GatewayTimeoutInSeconds: 2,
				GatewayMaxRetries:       2,
				ClaimLockTTLInSeconds:   10,
			},
		},
		Log: zap.NewNop(),
	}
	return &usecaseFixture{usecase: uc, claimRepo: claimRepo, events: events, gateway: gateway, locker: locker}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")
}

func submitRequest(providerID int64, totalAmount float64) *requests.SubmitDirectClaimRequest {
	return &requests.SubmitDirectClaimRequest{
		PatientID:        42,
		ProviderID:       providerID,
		MembershipNumber: "MEM-001122",
		TotalAmount:      totalAmount,
		Items: []requests.ClaimItem{
			{MedicineID: 11, MedicineName: "Amoxicillin 500mg", Quantity: 2, UnitPrice: 75.0, TotalPrice: 150.0},
		},
	}
}

func approvedResult(claimNumber string, totalAmount float64) *models.ProviderSubmissionResult {
	covered := 127.5
	patient := totalAmount - covered
	return &models.ProviderSubmissionResult{
		Success:               true,
		Status:                constvars.ClaimStatusApproved,
		ProviderClaimID:       "PRV-9001",
		AuthorizationNumber:   "AUTH-" + claimNumber,
		ApprovalCode:          "APR000001",
		CoveredAmount:         &covered,
		PatientResponsibility: &patient,
		Message:               "Claim approved automatically",
		Raw:                   json.RawMessage(`{"status":"APPROVED"}`),
	}
}

func TestSubmitDirectClaim_ManualPath(t *testing.T) {
	provider := manualProvider()
	fixture := newUsecaseFixture(provider, &stubGateway{})

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.True(t, response.Success)
	assert.Equal(t, constvars.ClaimResponseStatusManualProcessing, response.Status)
	assert.True(t, strings.HasPrefix(response.ClaimNumber, "CLM-MAN-"), "manual claims carry the MAN provider code, got %s", response.ClaimNumber)
	assert.Equal(t, constvars.ClaimManualProcessingMessage, response.Message)

	stored := fixture.claimRepo.claims[response.ClaimNumber]
	require.NotNil(t, stored)
	assert.Equal(t, constvars.ClaimStatusPendingPatientAuth, stored.Status)
	assert.Equal(t, constvars.IntegrationStatusManual, stored.IntegrationStatus)
	assert.False(t, stored.IsDirectSubmission)
	assert.Zero(t, fixture.gateway.callCount, "manual path never calls the provider gateway")
}

func TestSubmitDirectClaim_EmptyEndpointFallsBackToManual(t *testing.T) {
	provider := directProvider()
	provider.APIEndpoint = ""
	fixture := newUsecaseFixture(provider, &stubGateway{})

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	assert.Equal(t, constvars.ClaimResponseStatusManualProcessing, response.Status)
	assert.Zero(t, fixture.gateway.callCount)
}

func TestSubmitDirectClaim_AutoApproved(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{}
	fixture := newUsecaseFixture(provider, gateway)
	gateway.result = approvedResult("", 150.0)

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.True(t, response.Success)
	assert.Equal(t, constvars.ClaimStatusApproved, response.Status)
	assert.True(t, strings.HasPrefix(response.ClaimNumber, "CLM-DSC-"))
	require.NotNil(t, response.CoveredAmount)
	require.NotNil(t, response.PatientResponsibility)
	assert.InDelta(t, 150.0, *response.CoveredAmount+*response.PatientResponsibility, 0.001)

	stored := fixture.claimRepo.claims[response.ClaimNumber]
	require.NotNil(t, stored)
	assert.Equal(t, constvars.ClaimStatusApproved, stored.Status)
	assert.Equal(t, constvars.IntegrationStatusSuccess, stored.IntegrationStatus)
	assert.True(t, stored.AutoProcessed)
	assert.True(t, stored.RealTimeValidated)
	assert.True(t, stored.IsDirectSubmission)
	require.NotNil(t, stored.ProcessingDurationMs)
	assert.Equal(t, int64(2), stored.Version, "gateway outcome lands as the second write")

	events, _ := fixture.events.FindByClaimNumber(testContext(), response.ClaimNumber)
	require.Len(t, events, 2)
	assert.Equal(t, constvars.ClaimStatusProcessing, events[0].ToStatus)
	assert.Equal(t, constvars.ClaimStatusProcessing, events[1].FromStatus)
	assert.Equal(t, constvars.ClaimStatusApproved, events[1].ToStatus)
	assert.Equal(t, constvars.ClaimEventSourceOrchestrator, events[1].Source)
}

func TestSubmitDirectClaim_OverLimitPendingReview(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{
		result: &models.ProviderSubmissionResult{
			Success: true,
			Status:  constvars.ClaimStatusPendingReview,
			Message: "Claim requires manual review by the scheme",
		},
	}
	fixture := newUsecaseFixture(provider, gateway)

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 5000.0))
	require.NoError(t, err)

	assert.Equal(t, constvars.ClaimStatusPendingReview, response.Status)
	assert.Nil(t, response.CoveredAmount, "no coverage is committed before review")
	assert.Nil(t, response.PatientResponsibility)

	stored := fixture.claimRepo.claims[response.ClaimNumber]
	require.NotNil(t, stored)
	assert.Equal(t, constvars.ClaimStatusPendingReview, stored.Status)
	assert.Nil(t, stored.CoveredAmount)
}

func TestSubmitDirectClaim_RetriesTransientFailure(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{failCount: 1}
	gateway.result = approvedResult("", 150.0)
	fixture := newUsecaseFixture(provider, gateway)

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	assert.Equal(t, 2, gateway.callCount)
	assert.Equal(t, constvars.ClaimStatusApproved, response.Status)
}

func TestSubmitDirectClaim_RetryExhaustionFallsBackToReview(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{failCount: 10}
	fixture := newUsecaseFixture(provider, gateway)

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	assert.Equal(t, 3, gateway.callCount, "one initial attempt plus the configured retries")
	assert.True(t, response.Success, "the claim survived, only the integration failed")
	assert.Equal(t, constvars.ClaimStatusPendingReview, response.Status)
	assert.Equal(t, constvars.ClaimProviderUnavailableMessage, response.Message)
	assert.Equal(t, "REV-"+response.ClaimNumber, response.AuthorizationNumber)

	stored := fixture.claimRepo.claims[response.ClaimNumber]
	require.NotNil(t, stored)
	assert.Equal(t, constvars.ClaimStatusPendingReview, stored.Status)
	assert.Equal(t, constvars.IntegrationStatusFailed, stored.IntegrationStatus)
}

func TestSubmitDirectClaim_ProviderNotFound(t *testing.T) {
	fixture := newUsecaseFixture(nil, &stubGateway{})

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(99, 150.0))
	require.NoError(t, err)

	assert.False(t, response.Success)
	assert.Equal(t, constvars.ClaimResponseStatusError, response.Status)
	assert.Equal(t, constvars.ErrClientProviderNotFound, response.Message)
	assert.Empty(t, fixture.claimRepo.claims, "nothing is persisted when the provider is unknown")
}

func TestSubmitDirectClaim_LostUpdateRaceKeepsStoredState(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{}
	gateway.result = approvedResult("", 150.0)
	fixture := newUsecaseFixture(provider, gateway)
	fixture.claimRepo.conflictOnce = true

	response, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	stored := fixture.claimRepo.claims[response.ClaimNumber]
	require.NotNil(t, stored)
	assert.Equal(t, stored.Status, response.Status, "response reflects whatever state won the race")
	assert.Equal(t, int64(1), stored.Version, "the conflicting write was not applied")
}

func TestGetClaimStatus(t *testing.T) {
	provider := manualProvider()
	fixture := newUsecaseFixture(provider, &stubGateway{})

	submitted, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	status, err := fixture.usecase.GetClaimStatus(testContext(), submitted.ClaimNumber)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, submitted.ClaimNumber, status.ClaimNumber)
	assert.Equal(t, constvars.ClaimStatusPendingPatientAuth, status.Status)
	assert.False(t, status.ClaimDate.IsZero())

	missing, err := fixture.usecase.GetClaimStatus(testContext(), "CLM-DSC-209912-000000")
	require.NoError(t, err)
	assert.Nil(t, missing, "unknown claim numbers resolve to no result, not an error")
}

func TestUpdateClaimStatus_ApprovesPendingReview(t *testing.T) {
	provider := directProvider()
	gateway := &stubGateway{
		result: &models.ProviderSubmissionResult{Success: true, Status: constvars.ClaimStatusPendingReview},
	}
	fixture := newUsecaseFixture(provider, gateway)

	submitted, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 5000.0))
	require.NoError(t, err)

	covered := 4250.0
	updated, err := fixture.usecase.UpdateClaimStatus(testContext(), submitted.ClaimNumber, &requests.UpdateClaimStatusRequest{
		Status:        constvars.ClaimStatusApproved,
		CoveredAmount: &covered,
		ApprovalCode:  "APR000777",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ClaimStatusApproved, updated.Status)
	require.NotNil(t, updated.CoveredAmount)
	require.NotNil(t, updated.PatientResponsibility)
	assert.InDelta(t, 750.0, *updated.PatientResponsibility, 0.001, "patient share is derived when the reviewer only supplies coverage")
	assert.Equal(t, "APR000777", updated.ApprovalCode)

	events, _ := fixture.events.FindByClaimNumber(testContext(), submitted.ClaimNumber)
	last := events[len(events)-1]
	assert.Equal(t, constvars.ClaimEventSourceStaff, last.Source)
	assert.Equal(t, constvars.ClaimStatusApproved, last.ToStatus)
}

func TestUpdateClaimStatus_RejectsIllegalTransition(t *testing.T) {
	provider := manualProvider()
	fixture := newUsecaseFixture(provider, &stubGateway{})

	submitted, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	// PENDING_PATIENT_AUTH can only move to CLAIM_SUBMITTED.
	_, err = fixture.usecase.UpdateClaimStatus(testContext(), submitted.ClaimNumber, &requests.UpdateClaimStatusRequest{
		Status: constvars.ClaimStatusPaid,
	})
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
}

func TestUpdateClaimStatus_UnknownClaim(t *testing.T) {
	fixture := newUsecaseFixture(manualProvider(), &stubGateway{})

	_, err := fixture.usecase.UpdateClaimStatus(testContext(), "CLM-DSC-209912-000000", &requests.UpdateClaimStatusRequest{
		Status: constvars.ClaimStatusApproved,
	})
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestUpdateClaimStatus_LockContention(t *testing.T) {
	provider := manualProvider()
	fixture := newUsecaseFixture(provider, &stubGateway{})

	submitted, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)

	fixture.locker.denyLock = true
	_, err = fixture.usecase.UpdateClaimStatus(testContext(), submitted.ClaimNumber, &requests.UpdateClaimStatusRequest{
		Status: constvars.ClaimStatusClaimSubmitted,
	})
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
}

func TestGetClaimsByPatient(t *testing.T) {
	provider := manualProvider()
	fixture := newUsecaseFixture(provider, &stubGateway{})

	_, err := fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 150.0))
	require.NoError(t, err)
	_, err = fixture.usecase.SubmitDirectClaim(testContext(), submitRequest(provider.ID, 320.0))
	require.NoError(t, err)

	claims, err := fixture.usecase.GetClaimsByPatient(testContext(), 42)
	require.NoError(t, err)
	assert.Len(t, claims, 2)

	none, err := fixture.usecase.GetClaimsByPatient(testContext(), 77)
	require.NoError(t, err)
	assert.Empty(t, none)
}
