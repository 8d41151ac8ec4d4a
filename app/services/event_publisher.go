package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirphl/restaurant-hub/config"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Domain event types
const (
	EventRestaurantRegistered    = "restaurant.registered"
	EventRestaurantOnlineChanged = "restaurant.online_changed"
	EventPaymentStatusChanged    = "restaurant.payment_status_changed"
	EventProductCreated          = "product.created"
)

// DomainEvent is the envelope written to the event stream
type DomainEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NewDomainEvent stamps an event with a fresh id and the current time
func NewDomainEvent(eventType, key string, payload any) DomainEvent {
	return DomainEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: utils.UTCNow(),
		Payload:    payload,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Close() error
}

// messageWriter is the part of kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes events as JSON to a single topic keyed by aggregate id
type KafkaEventPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewEventPublisher returns a kafka publisher when events are enabled, otherwise a noop
func NewEventPublisher(cfg config.EventsConfig) EventPublisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NoopEventPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           cfg.WriteTimeout,
	}

	return newKafkaEventPublisher(writer, cfg.WriteTimeout)
}

func newKafkaEventPublisher(w messageWriter, timeout time.Duration) *KafkaEventPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaEventPublisher{writer: w, timeout: timeout}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

// NoopEventPublisher drops every event
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, DomainEvent) error { return nil }

func (NoopEventPublisher) Close() error { return nil }
