package claims

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

var (
	claimUsecaseInstance contracts.ClaimUsecase
	onceClaimUsecase     sync.Once
)

type claimUsecase struct {
	ClaimRepository      contracts.ClaimRepository
	ProviderRepository   contracts.ProviderRepository
	ClaimEventRepository contracts.ClaimEventRepository
	GatewaySelector      contracts.GatewaySelector
	Locker               contracts.LockerService
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewClaimUsecase(
	claimRepository contracts.ClaimRepository,
	providerRepository contracts.ProviderRepository,
	claimEventRepository contracts.ClaimEventRepository,
	gatewaySelector contracts.GatewaySelector,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClaimUsecase {
	onceClaimUsecase.Do(func() {
		claimUsecaseInstance = &claimUsecase{
			ClaimRepository:      claimRepository,
			ProviderRepository:   providerRepository,
			ClaimEventRepository: claimEventRepository,
			GatewaySelector:      gatewaySelector,
			Locker:               locker,
			InternalConfig:       internalConfig,
			Log:                  logger,
		}
	})
	return claimUsecaseInstance
}

// SubmitDirectClaim runs the whole submission workflow. It never surfaces an
// error to the transport layer; every failure collapses into a structured
// response so callers always get a status and a message.
func (uc *claimUsecase) SubmitDirectClaim(ctx context.Context, request *requests.SubmitDirectClaimRequest) (*responses.DirectClaimResponse, error) {
	start := time.Now()
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.SubmitDirectClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProviderIDKey, request.ProviderID),
	)

	provider, err := uc.ProviderRepository.FindByID(ctx, request.ProviderID)
	if err != nil {
		uc.Log.Error("claimUsecase.SubmitDirectClaim provider lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return errorClaimResponse(constvars.ErrClientClaimSubmissionFailed, start, err), nil
	}
	if provider == nil {
		return errorClaimResponse(constvars.ErrClientProviderNotFound, start, nil), nil
	}

	if !provider.SupportsDirectClaims || provider.APIEndpoint == "" {
		return uc.submitManualClaim(ctx, request, provider, start)
	}
	return uc.submitDirectPathClaim(ctx, request, provider, start)
}

// submitManualClaim persists the claim for offline processing. No provider
// call is made.
func (uc *claimUsecase) submitManualClaim(ctx context.Context, request *requests.SubmitDirectClaimRequest, provider *models.Provider, start time.Time) (*responses.DirectClaimResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	claim := buildClaimFromRequest(request, provider)
	claim.ClaimNumber = utils.GenerateClaimNumber(constvars.ManualProviderCode, time.Now())
	claim.Status = constvars.ClaimStatusPendingPatientAuth
	claim.IsDirectSubmission = false
	claim.IntegrationStatus = constvars.IntegrationStatusManual

	created, err := uc.ClaimRepository.CreateClaim(ctx, claim)
	if err != nil {
		uc.Log.Error("claimUsecase.submitManualClaim failed to persist claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return errorClaimResponse(constvars.ErrClientClaimSubmissionFailed, start, err), nil
	}

	uc.appendEvent(ctx, created.ClaimNumber, "", created.Status, constvars.ClaimEventSourceOrchestrator, nil)

	uc.Log.Info("claimUsecase.submitManualClaim claim created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, created.ClaimNumber),
	)
	return &responses.DirectClaimResponse{
		Success:        true,
		ClaimID:        created.ID,
		ClaimNumber:    created.ClaimNumber,
		Status:         constvars.ClaimResponseStatusManualProcessing,
		Message:        constvars.ClaimManualProcessingMessage,
		ProcessingTime: time.Since(start).Milliseconds(),
	}, nil
}

func (uc *claimUsecase) submitDirectPathClaim(ctx context.Context, request *requests.SubmitDirectClaimRequest, provider *models.Provider, start time.Time) (*responses.DirectClaimResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	claim := buildClaimFromRequest(request, provider)
	claim.ClaimNumber = utils.GenerateClaimNumber(provider.Code, time.Now())
	claim.Status = constvars.ClaimStatusProcessing
	claim.IsDirectSubmission = true
	claim.IntegrationStatus = constvars.IntegrationStatusSubmitting

	created, err := uc.ClaimRepository.CreateClaim(ctx, claim)
	if err != nil {
		uc.Log.Error("claimUsecase.submitDirectPathClaim failed to persist claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return errorClaimResponse(constvars.ErrClientClaimSubmissionFailed, start, err), nil
	}
	uc.appendEvent(ctx, created.ClaimNumber, "", created.Status, constvars.ClaimEventSourceOrchestrator, nil)

	result, gatewayErr := uc.submitWithRetry(ctx, provider, created)
	if gatewayErr != nil {
		// Provider stayed unreachable through the retry budget; the claim
		// falls back to manual review instead of rotting in PROCESSING.
		return uc.applyGatewayFallback(ctx, created, start)
	}

	fromStatus := created.Status
	created.Status = result.Status
	created.IntegrationStatus = constvars.IntegrationStatusSuccess
	if !result.Success {
		created.IntegrationStatus = constvars.IntegrationStatusFailed
	}
	created.CoveredAmount = result.CoveredAmount
	created.PatientResponsibility = result.PatientResponsibility
	created.ApprovalCode = result.ApprovalCode
	created.AuthorizationNumber = result.AuthorizationNumber
	created.ResponseData = result.Raw
	created.AutoProcessed = true
	created.RealTimeValidated = true
	processingDuration := time.Since(start).Milliseconds()
	created.ProcessingDurationMs = &processingDuration

	updated, err := uc.ClaimRepository.UpdateClaim(ctx, created)
	if err != nil {
		if customErr, ok := err.(*exceptions.CustomError); ok && customErr.StatusCode == constvars.StatusConflict {
			// An early webhook already moved the claim; its state wins.
			uc.Log.Warn("claimUsecase.submitDirectPathClaim lost update race, keeping stored state",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingClaimNumberKey, created.ClaimNumber),
			)
			current, findErr := uc.ClaimRepository.FindByClaimNumber(ctx, created.ClaimNumber)
			if findErr == nil && current != nil {
				return buildDirectClaimResponse(current, result, start), nil
			}
		}
		uc.markClaimFailed(ctx, created.ClaimNumber)
		return errorClaimResponse(constvars.ErrClientClaimSubmissionFailed, start, err), nil
	}
	uc.appendEvent(ctx, updated.ClaimNumber, fromStatus, updated.Status, constvars.ClaimEventSourceOrchestrator, result.Raw)

	uc.Log.Info("claimUsecase.submitDirectPathClaim completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, updated.ClaimNumber),
		zap.String(constvars.LoggingClaimStatusKey, updated.Status),
	)
	return buildDirectClaimResponse(updated, result, start), nil
}

// submitWithRetry calls the provider gateway with a bounded retry budget.
// Every gateway error is treated as transient; a definitive rejection still
// comes back as a successful call with Success=false.
func (uc *claimUsecase) submitWithRetry(ctx context.Context, provider *models.Provider, claim *models.Claim) (*models.ProviderSubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	gateway := uc.GatewaySelector.GatewayFor(provider)
	timeout := time.Duration(uc.InternalConfig.Claims.GatewayTimeoutInSeconds) * time.Second

	attempts := uc.InternalConfig.Claims.GatewayMaxRetries + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		result, err := gateway.SubmitClaim(callCtx, provider, claim)
		cancel()
		if err == nil {
			return result, nil
		}
		lastErr = err
		uc.Log.Warn("claimUsecase.submitWithRetry gateway attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claim.ClaimNumber),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

// applyGatewayFallback moves a PROCESSING claim to PENDING_REVIEW after the
// retry budget is exhausted.
func (uc *claimUsecase) applyGatewayFallback(ctx context.Context, claim *models.Claim, start time.Time) (*responses.DirectClaimResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	fromStatus := claim.Status
	claim.Status = constvars.ClaimStatusPendingReview
	claim.IntegrationStatus = constvars.IntegrationStatusFailed
	claim.AuthorizationNumber = "REV-" + claim.ClaimNumber
	processingDuration := time.Since(start).Milliseconds()
	claim.ProcessingDurationMs = &processingDuration

	updated, err := uc.ClaimRepository.UpdateClaim(ctx, claim)
	if err != nil {
		uc.Log.Error("claimUsecase.applyGatewayFallback failed to update claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claim.ClaimNumber),
			zap.Error(err),
		)
		uc.markClaimFailed(ctx, claim.ClaimNumber)
		return errorClaimResponse(constvars.ErrClientClaimSubmissionFailed, start, err), nil
	}
	uc.appendEvent(ctx, updated.ClaimNumber, fromStatus, updated.Status, constvars.ClaimEventSourceOrchestrator, nil)

	return &responses.DirectClaimResponse{
		Success:             true,
		ClaimID:             updated.ID,
		ClaimNumber:         updated.ClaimNumber,
		AuthorizationNumber: updated.AuthorizationNumber,
		Status:              updated.Status,
		Message:             constvars.ClaimProviderUnavailableMessage,
		ProcessingTime:      time.Since(start).Milliseconds(),
	}, nil
}

// markClaimFailed is the compensating update for errors hit after claim
// creation. Best effort: the claim is re-read so the CAS token is fresh.
func (uc *claimUsecase) markClaimFailed(ctx context.Context, claimNumber string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	claim, err := uc.ClaimRepository.FindByClaimNumber(ctx, claimNumber)
	if err != nil || claim == nil {
		return
	}
	if claim.Status != constvars.ClaimStatusProcessing {
		return
	}

	fromStatus := claim.Status
	claim.Status = constvars.ClaimStatusFailed
	claim.IntegrationStatus = constvars.IntegrationStatusFailed
	if _, err := uc.ClaimRepository.UpdateClaim(ctx, claim); err != nil {
		uc.Log.Error("claimUsecase.markClaimFailed compensating update failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claimNumber),
			zap.Error(err),
		)
		return
	}
	uc.appendEvent(ctx, claimNumber, fromStatus, constvars.ClaimStatusFailed, constvars.ClaimEventSourceOrchestrator, nil)
}

func (uc *claimUsecase) GetClaimStatus(ctx context.Context, claimNumber string) (*responses.ClaimStatusResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.GetClaimStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
	)

	claim, err := uc.ClaimRepository.FindByClaimNumber(ctx, claimNumber)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, nil
	}
	return &responses.ClaimStatusResponse{
		ClaimNumber: claim.ClaimNumber,
		Status:      claim.Status,
		ClaimDate:   claim.ClaimDate,
		LastUpdated: claim.LastUpdated,
	}, nil
}

// UpdateClaimStatus drives staff-managed transitions under a claim-level lock
// so a concurrent webhook cannot interleave with the read-validate-write.
func (uc *claimUsecase) UpdateClaimStatus(ctx context.Context, claimNumber string, request *requests.UpdateClaimStatusRequest) (*responses.ClaimResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.UpdateClaimStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
		zap.String(constvars.LoggingClaimStatusKey, request.Status),
	)

	lockKey := fmt.Sprintf(constvars.RedisClaimLockKeyFormat, claimNumber)
	lockTTL := time.Duration(uc.InternalConfig.Claims.ClaimLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrClaimVersionConflict(fmt.Errorf("claim %s is being updated by another writer", claimNumber))
	}
	defer uc.Locker.Unlock(ctx, lockKey, lockValue)

	claim, err := uc.ClaimRepository.FindByClaimNumber(ctx, claimNumber)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, exceptions.ErrClaimNotFound(fmt.Errorf("claim %s not found", claimNumber))
	}

	if !models.CanTransitionClaimStatus(claim.Status, request.Status) {
		return nil, exceptions.ErrInvalidStatusTransition(fmt.Errorf("cannot move claim from %s to %s", claim.Status, request.Status))
	}

	fromStatus := claim.Status
	claim.Status = request.Status
	if request.ApprovalCode != "" {
		claim.ApprovalCode = request.ApprovalCode
	}
	if request.RejectionReason != "" {
		claim.RejectionReason = request.RejectionReason
	}
	if request.CoveredAmount != nil {
		covered := utils.RoundMoney(*request.CoveredAmount)
		claim.CoveredAmount = &covered
		patientResponsibility := utils.RoundMoney(claim.TotalAmount - covered)
		if request.PatientResponsibility != nil {
			patientResponsibility = utils.RoundMoney(*request.PatientResponsibility)
		}
		claim.PatientResponsibility = &patientResponsibility
	}

	updated, err := uc.ClaimRepository.UpdateClaim(ctx, claim)
	if err != nil {
		return nil, err
	}
	uc.appendEvent(ctx, updated.ClaimNumber, fromStatus, updated.Status, constvars.ClaimEventSourceStaff, request)

	return buildClaimResponse(updated), nil
}

func (uc *claimUsecase) GetClaimsByPatient(ctx context.Context, patientID int64) ([]responses.ClaimResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("claimUsecase.GetClaimsByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("patient_id", patientID),
	)

	claims, err := uc.ClaimRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.ClaimResponse, 0, len(claims))
	for i := range claims {
		result = append(result, *buildClaimResponse(&claims[i]))
	}
	return result, nil
}

func (uc *claimUsecase) appendEvent(ctx context.Context, claimNumber, fromStatus, toStatus, source string, payload interface{}) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := &models.ClaimEvent{
		ClaimNumber: claimNumber,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
		Source:      source,
		RequestID:   requestID,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.ClaimEventRepository.AppendEvent(ctx, event); err != nil {
		// The audit trail never blocks claim processing.
		uc.Log.Error("claimUsecase.appendEvent failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claimNumber),
			zap.Error(err),
		)
	}
}

func buildClaimFromRequest(request *requests.SubmitDirectClaimRequest, provider *models.Provider) *models.Claim {
	items := make([]models.ClaimItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, models.ClaimItem{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			NappiCode:    item.NappiCode,
			Dosage:       item.Dosage,
		})
	}

	return &models.Claim{
		PatientID:        request.PatientID,
		ProviderID:       provider.ID,
		OrderID:          request.OrderID,
		PrescriptionID:   request.PrescriptionID,
		MembershipNumber: request.MembershipNumber,
		DependentCode:    request.DependentCode,
		TotalAmount:      request.TotalAmount,
		SubmissionData: models.ClaimSubmissionData{
			Items:         items,
			BenefitType:   request.BenefitType,
			DiagnosisCode: request.DiagnosisCode,
			TreatmentCode: request.TreatmentCode,
			ServiceDate:   request.ServiceDate,
		},
	}
}

func buildDirectClaimResponse(claim *models.Claim, result *models.ProviderSubmissionResult, start time.Time) *responses.DirectClaimResponse {
	response := &responses.DirectClaimResponse{
		Success:               result.Success,
		ClaimID:               claim.ID,
		ClaimNumber:           claim.ClaimNumber,
		ProviderClaimID:       result.ProviderClaimID,
		AuthorizationNumber:   claim.AuthorizationNumber,
		Status:                claim.Status,
		Message:               result.Message,
		ProcessingTime:        time.Since(start).Milliseconds(),
		CoveredAmount:         claim.CoveredAmount,
		PatientResponsibility: claim.PatientResponsibility,
		ApprovalCode:          claim.ApprovalCode,
	}
	return response
}

func errorClaimResponse(message string, start time.Time, err error) *responses.DirectClaimResponse {
	response := &responses.DirectClaimResponse{
		Success:        false,
		Status:         constvars.ClaimResponseStatusError,
		Message:        message,
		ProcessingTime: time.Since(start).Milliseconds(),
	}
	if err != nil {
		response.Errors = []string{message}
	}
	return response
}

func buildClaimResponse(claim *models.Claim) *responses.ClaimResponse {
	return &responses.ClaimResponse{
		ID:                    claim.ID,
		ClaimNumber:           claim.ClaimNumber,
		PatientID:             claim.PatientID,
		ProviderID:            claim.ProviderID,
		MembershipNumber:      claim.MembershipNumber,
		DependentCode:         claim.DependentCode,
		TotalAmount:           claim.TotalAmount,
		Status:                claim.Status,
		IsDirectSubmission:    claim.IsDirectSubmission,
		IntegrationStatus:     claim.IntegrationStatus,
		CoveredAmount:         claim.CoveredAmount,
		PatientResponsibility: claim.PatientResponsibility,
		ApprovalCode:          claim.ApprovalCode,
		AuthorizationNumber:   claim.AuthorizationNumber,
		RejectionReason:       claim.RejectionReason,
		ProcessingDurationMs:  claim.ProcessingDurationMs,
		WebhookReceived:       claim.WebhookReceived,
		ClaimDate:             claim.ClaimDate,
		LastUpdated:           claim.LastUpdated,
	}
}
