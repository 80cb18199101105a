package contracts

import (
	"context"

	"claimswitch-service/internal/app/services/shared/callbackqueue"
)

// CallbackQueueService is the durable buffer between webhook ingestion and
// reconciliation.
type CallbackQueueService interface {
	Enqueue(ctx context.Context, message callbackqueue.CallbackMessage) error
	Reenqueue(ctx context.Context, message callbackqueue.CallbackMessage) error
	EnqueueToDeadQueue(ctx context.Context, message callbackqueue.CallbackMessage) error
	FetchN(ctx context.Context, max int) ([]callbackqueue.QueuedItem, error)
	AckMessage(deliveryTag uint64) error
}
