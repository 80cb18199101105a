package webhook

import (
	"context"
	"sync"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/services/shared/callbackqueue"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// CallbackWorker drains the claim callback queue on an interval. A Redis lock
// elects a single active worker so horizontally scaled instances do not fight
// over the same deliveries.
type CallbackWorker struct {
	WebhookUsecase contracts.WebhookUsecase
	CallbackQueue  contracts.CallbackQueueService
	Locker         contracts.LockerService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewCallbackWorker(
	webhookUsecase contracts.WebhookUsecase,
	callbackQueue contracts.CallbackQueueService,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *CallbackWorker {
	return &CallbackWorker{
		WebhookUsecase: webhookUsecase,
		CallbackQueue:  callbackQueue,
		Locker:         locker,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

// Start launches the polling loop and returns a stop function that blocks
// until the in-flight batch finishes.
func (w *CallbackWorker) Start(ctx context.Context) func() {
	interval := time.Duration(w.InternalConfig.Claims.WorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				w.runOnce(workerCtx)
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func (w *CallbackWorker) runOnce(ctx context.Context) {
	lockTTL := 2 * time.Duration(w.InternalConfig.Claims.WorkerIntervalInSeconds) * time.Second
	acquired, lockValue, err := w.Locker.TryLock(ctx, constvars.RedisCallbackWorkerLockKey, lockTTL)
	if err != nil {
		w.Log.Error("CallbackWorker.runOnce failed to acquire leader lock", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer w.Locker.Unlock(ctx, constvars.RedisCallbackWorkerLockKey, lockValue)

	items, err := w.CallbackQueue.FetchN(ctx, w.InternalConfig.Claims.WorkerBatchSize)
	if err != nil {
		w.Log.Error("CallbackWorker.runOnce failed to fetch callbacks", zap.Error(err))
		return
	}

	for _, item := range items {
		w.processItem(ctx, item.DeliveryTag, item.Message)
	}
}

func (w *CallbackWorker) processItem(ctx context.Context, deliveryTag uint64, message callbackqueue.CallbackMessage) {
	reconcileCtx := context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, message.RequestID)

	err := w.WebhookUsecase.ReconcileCallback(reconcileCtx, message.ProviderCode, message.Body)
	if err == nil {
		w.ack(deliveryTag, message.ID)
		return
	}

	if isPermanentCallbackError(err) {
		// Unknown claims, stale payloads and malformed bodies never heal;
		// retrying them only clogs the queue.
		w.Log.Warn("CallbackWorker.processItem discarding callback",
			zap.String(constvars.LoggingMessageIDKey, message.ID),
			zap.String(constvars.LoggingProviderCodeKey, message.ProviderCode),
			zap.Error(err),
		)
		w.ack(deliveryTag, message.ID)
		return
	}

	message.FailedCount++
	if message.FailedCount >= w.InternalConfig.Claims.CallbackMaxAttempts {
		w.Log.Error("CallbackWorker.processItem moving callback to dead letter queue",
			zap.String(constvars.LoggingMessageIDKey, message.ID),
			zap.Int(constvars.LoggingFailedCountKey, message.FailedCount),
			zap.Error(err),
		)
		if dlqErr := w.CallbackQueue.EnqueueToDeadQueue(ctx, message); dlqErr != nil {
			w.Log.Error("CallbackWorker.processItem failed to publish to dead letter queue",
				zap.String(constvars.LoggingMessageIDKey, message.ID),
				zap.Error(dlqErr),
			)
			return
		}
		w.ack(deliveryTag, message.ID)
		return
	}

	w.Log.Warn("CallbackWorker.processItem re-enqueueing callback",
		zap.String(constvars.LoggingMessageIDKey, message.ID),
		zap.Int(constvars.LoggingFailedCountKey, message.FailedCount),
		zap.Error(err),
	)
	if requeueErr := w.CallbackQueue.Reenqueue(ctx, message); requeueErr != nil {
		w.Log.Error("CallbackWorker.processItem failed to re-enqueue callback",
			zap.String(constvars.LoggingMessageIDKey, message.ID),
			zap.Error(requeueErr),
		)
		return
	}
	w.ack(deliveryTag, message.ID)
}

func (w *CallbackWorker) ack(deliveryTag uint64, messageID string) {
	if err := w.CallbackQueue.AckMessage(deliveryTag); err != nil {
		w.Log.Error("CallbackWorker.ack failed",
			zap.String(constvars.LoggingMessageIDKey, messageID),
			zap.Error(err),
		)
	}
}

// isPermanentCallbackError reports whether retrying the callback can ever
// succeed. Client-class failures are final; everything else is assumed
// transient infrastructure trouble.
func isPermanentCallbackError(err error) bool {
	customErr, ok := err.(*exceptions.CustomError)
	if !ok {
		return false
	}
	switch customErr.StatusCode {
	case constvars.StatusBadRequest, constvars.StatusNotFound:
		return true
	case constvars.StatusConflict:
		return customErr.DevMessage == constvars.ErrDevWebhookStalePayload
	default:
		return false
	}
}
