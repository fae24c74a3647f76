package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"scentpos/internal/domain"
)

const (
	TransactionCreatedQueue = "pos.transaction.created"
	BroadcastQueuedQueue    = "pos.broadcast.queued"
)

// TransactionCreated is consumed by reporting and receipt workers.
type TransactionCreated struct {
	EventID         string    `json:"eventId"`
	EventType       string    `json:"eventType"`
	TransactionID   string    `json:"transactionId"`
	CustomerID      *string   `json:"customerId,omitempty"`
	PaymentMethodID string    `json:"paymentMethodId"`
	Total           int64     `json:"total"`
	ItemCount       int       `json:"itemCount"`
	Timestamp       time.Time `json:"timestamp"`
}

// BroadcastQueued tells the delivery worker a message is waiting.
type BroadcastQueued struct {
	EventID     string    `json:"eventId"`
	EventType   string    `json:"eventType"`
	BroadcastID string    `json:"broadcastId"`
	Recipients  int       `json:"recipients"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher emits POS events to RabbitMQ. A nil Publisher is a no-op so
// the API runs without a broker configured.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues so publish never fails due to missing infra
	for _, queue := range []string{TransactionCreatedQueue, BroadcastQueuedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.ch.Close()
}

func (p *Publisher) PublishTransactionCreated(ctx context.Context, t *domain.Transaction) error {
	if p == nil {
		return nil
	}
	ev := TransactionCreated{
		EventID:         uuid.NewString(),
		EventType:       "TransactionCreated",
		TransactionID:   t.ID,
		CustomerID:      t.CustomerID,
		PaymentMethodID: t.PaymentMethodID,
		Total:           t.Total,
		ItemCount:       len(t.Items),
		Timestamp:       time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal TransactionCreated: %w", err)
	}
	return p.publishJSON(ctx, TransactionCreatedQueue, ev.EventID, body)
}

func (p *Publisher) PublishBroadcastQueued(ctx context.Context, b *domain.Broadcast) error {
	if p == nil {
		return nil
	}
	ev := BroadcastQueued{
		EventID:     uuid.NewString(),
		EventType:   "BroadcastQueued",
		BroadcastID: b.ID,
		Recipients:  b.Recipients,
		Timestamp:   time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal BroadcastQueued: %w", err)
	}
	return p.publishJSON(ctx, BroadcastQueuedQueue, ev.EventID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
		},
	)
}
