package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/app/services/shared/callbackqueue"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// casRetryAttempts bounds the re-read loop when a reconcile update loses a
// version race against the orchestrator or a staff update.
const casRetryAttempts = 3

var (
	webhookUsecaseInstance contracts.WebhookUsecase
	onceWebhookUsecase     sync.Once
)

type webhookUsecase struct {
	ClaimRepository      contracts.ClaimRepository
	ClaimEventRepository contracts.ClaimEventRepository
	CallbackQueue        contracts.CallbackQueueService
	Locker               contracts.LockerService
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewWebhookUsecase(
	claimRepository contracts.ClaimRepository,
	claimEventRepository contracts.ClaimEventRepository,
	callbackQueue contracts.CallbackQueueService,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WebhookUsecase {
	onceWebhookUsecase.Do(func() {
		webhookUsecaseInstance = &webhookUsecase{
			ClaimRepository:      claimRepository,
			ClaimEventRepository: claimEventRepository,
			CallbackQueue:        callbackQueue,
			Locker:               locker,
			InternalConfig:       internalConfig,
			Log:                  logger,
		}
	})
	return webhookUsecaseInstance
}

// EnqueueCallback validates the minimum shape of a provider callback and
// stores it durably. Reconciliation happens later on the worker, so the
// provider gets a fast 202 regardless of claim store load.
func (uc *webhookUsecase) EnqueueCallback(ctx context.Context, providerCode string, body json.RawMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("webhookUsecase.EnqueueCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, providerCode),
	)

	var payload requests.ProviderWebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if payload.ClaimRef() == "" {
		return exceptions.ErrWebhookMissingClaimRef(fmt.Errorf("provider %s callback carries no claim reference", providerCode))
	}

	message := callbackqueue.CallbackMessage{
		ID:           uuid.NewString(),
		ProviderCode: providerCode,
		Body:         body,
		ReceivedAt:   time.Now().UTC(),
		RequestID:    requestID,
	}
	return uc.CallbackQueue.Enqueue(ctx, message)
}

// ReconcileCallback applies one provider callback against the claim store
// under the claim lock. Stale and terminal callbacks are discarded, not
// failed; the provider already moved on.
func (uc *webhookUsecase) ReconcileCallback(ctx context.Context, providerCode string, body json.RawMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var payload requests.ProviderWebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	claimNumber := payload.ClaimRef()
	if claimNumber == "" {
		return exceptions.ErrWebhookMissingClaimRef(fmt.Errorf("provider %s callback carries no claim reference", providerCode))
	}
	if payload.Status == "" {
		return exceptions.ErrClientCustomMessage(fmt.Errorf("provider %s callback for claim %s carries no status", providerCode, claimNumber))
	}

	uc.Log.Info("webhookUsecase.ReconcileCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, providerCode),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
	)

	lockKey := fmt.Sprintf(constvars.RedisClaimLockKeyFormat, claimNumber)
	lockTTL := time.Duration(uc.InternalConfig.Claims.ClaimLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrClaimVersionConflict(fmt.Errorf("claim %s is being updated by another writer", claimNumber))
	}
	defer uc.Locker.Unlock(ctx, lockKey, lockValue)

	for attempt := 1; attempt <= casRetryAttempts; attempt++ {
		err = uc.applyCallback(ctx, providerCode, claimNumber, &payload, body)
		if customErr, ok := err.(*exceptions.CustomError); ok &&
			customErr.StatusCode == constvars.StatusConflict &&
			customErr.DevMessage != constvars.ErrDevWebhookStalePayload &&
			attempt < casRetryAttempts {
			continue
		}
		return err
	}
	return err
}

func (uc *webhookUsecase) applyCallback(ctx context.Context, providerCode, claimNumber string, payload *requests.ProviderWebhookRequest, body json.RawMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	claim, err := uc.ClaimRepository.FindByClaimNumber(ctx, claimNumber)
	if err != nil {
		return err
	}
	if claim == nil {
		return exceptions.ErrWebhookUnknownClaim(fmt.Errorf("provider %s referenced claim %s", providerCode, claimNumber))
	}

	if eventTime, ok := parseEventTime(payload.EventTime); ok && eventTime.Before(claim.LastUpdated) {
		return exceptions.ErrWebhookStalePayload(nil)
	}

	if models.IsTerminalClaimStatus(claim.Status) {
		// Late callbacks for settled claims are logged and dropped.
		uc.Log.Warn("webhookUsecase.applyCallback discarding callback for terminal claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claimNumber),
			zap.String(constvars.LoggingClaimStatusKey, claim.Status),
		)
		return nil
	}

	fromStatus := claim.Status
	claim.Status = payload.Status
	if payload.ApprovalCode != "" {
		claim.ApprovalCode = payload.ApprovalCode
	}
	if payload.RejectionReason != "" {
		claim.RejectionReason = payload.RejectionReason
	}
	if payload.CoveredAmount != nil {
		covered := utils.RoundMoney(*payload.CoveredAmount)
		claim.CoveredAmount = &covered
		patientResponsibility := utils.RoundMoney(claim.TotalAmount - covered)
		if payload.PatientResponsibility != nil {
			patientResponsibility = utils.RoundMoney(*payload.PatientResponsibility)
		}
		claim.PatientResponsibility = &patientResponsibility
	}
	claim.ResponseData = body
	claim.WebhookReceived = true
	if claim.IntegrationStatus == constvars.IntegrationStatusSubmitting {
		claim.IntegrationStatus = constvars.IntegrationStatusSuccess
	}

	updated, err := uc.ClaimRepository.UpdateClaim(ctx, claim)
	if err != nil {
		return err
	}

	event := &models.ClaimEvent{
		ClaimNumber: updated.ClaimNumber,
		FromStatus:  fromStatus,
		ToStatus:    updated.Status,
		Source:      constvars.ClaimEventSourceWebhook,
		RequestID:   requestID,
		Payload:     json.RawMessage(body),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.ClaimEventRepository.AppendEvent(ctx, event); err != nil {
		uc.Log.Error("webhookUsecase.applyCallback failed to append audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClaimNumberKey, claimNumber),
			zap.Error(err),
		)
	}

	uc.Log.Info("webhookUsecase.applyCallback claim reconciled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
		zap.String(constvars.LoggingClaimStatusKey, updated.Status),
	)
	return nil
}

func parseEventTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	eventTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return eventTime, true
}
