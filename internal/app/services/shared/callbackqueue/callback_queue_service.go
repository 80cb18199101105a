package callbackqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/exceptions"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "claim_callback_queue"
	DeadLetterQueueName = "claim_callback_dlq"
)

// CallbackMessage is the provider callback payload stored in RabbitMQ until a
// worker reconciles it against the claim store.
type CallbackMessage struct {
	ID           string          `json:"id"`
	ProviderCode string          `json:"provider_code"`
	Body         json.RawMessage `json:"body"`
	ReceivedAt   time.Time       `json:"received_at"`
	RequestID    string          `json:"request_id,omitempty"`
	FailedCount  int             `json:"failed_count"`
}

// amqpChannel is the slice of amqp.Channel behavior the service uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
}

// Service manages the durable claim callback queues.
type Service struct {
	ch       amqpChannel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService initializes the queue service, declares durable queues, enables confirms, and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		StandardQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	// Limit unacked deliveries in flight
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	// Publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// QueuedItem represents a fetched delivery and its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Message     CallbackMessage
}

// Enqueue publishes a message to the standard queue with persistence and waits for confirm.
func (s *Service) Enqueue(ctx context.Context, message CallbackMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("CallbackQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, message.ID),
	)

	return s.publish(ctx, StandardQueueName, message)
}

// Reenqueue publishes the (possibly modified) message to the tail of the standard queue.
func (s *Service) Reenqueue(ctx context.Context, message CallbackMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("CallbackQueue.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, message.ID),
		zap.Int(constvars.LoggingFailedCountKey, message.FailedCount),
	)

	return s.publish(ctx, StandardQueueName, message)
}

// EnqueueToDeadQueue publishes the message to the DLQ.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, message CallbackMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("CallbackQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, message.ID),
	)

	return s.publish(ctx, DeadLetterQueueName, message)
}

// FetchN retrieves up to N messages using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, max int) ([]QueuedItem, error) {
	n := max
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var payload CallbackMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			// Invalid JSON goes to the DLQ before the ack, so a failed
			// publish leaves the message redeliverable instead of lost.
			if pubErr := s.publishRaw(ctx, DeadLetterQueueName, d.Body); pubErr != nil {
				s.log.Error("CallbackQueue.FetchN failed to move malformed message to dead letter queue",
					zap.Uint64(constvars.LoggingDeliveryTagKey, d.DeliveryTag),
					zap.Error(pubErr),
				)
				continue
			}
			if ackErr := s.ch.Ack(d.DeliveryTag, false); ackErr != nil {
				s.log.Error("CallbackQueue.FetchN failed to ack malformed message",
					zap.Uint64(constvars.LoggingDeliveryTagKey, d.DeliveryTag),
					zap.Error(ackErr),
				)
			}
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Message: payload})
	}

	return items, nil
}

// AckMessage acknowledges a message by delivery tag.
func (s *Service) AckMessage(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *Service) publish(ctx context.Context, queue string, message CallbackMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
