// Package events publishes slotlink domain events. Publishing is best effort:
// a failed publish is logged and never surfaces to the caller.
package events

import (
	"context"
	"time"

	"slotlink/pkg/kafka"
	"slotlink/pkg/logger"
	"slotlink/pkg/telemetry"
)

const (
	TypeAvailabilityUpserted = "availability.upserted"
	TypeLinkCreated          = "link.created"
	TypeLinkUpdated          = "link.updated"
	TypeBookingClaimed       = "booking.claimed"

	SchemaVersion = "1"
	Source        = "slotlink"
)

// Event is a domain event. Key selects the partition, so events of one link
// or owner stay ordered.
type Event struct {
	Type       string
	Key        string
	Payload    any
	OccurredAt time.Time
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// messagePublisher is the part of *kafka.Producer the publisher uses.
type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
	timeout  time.Duration
	log      *logger.Logger
}

// NewKafkaPublisher returns a publisher writing to the producer's default
// topic. Each publish is bounded by timeout and detached from the request's
// cancellation.
func NewKafkaPublisher(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) Publisher {
	return newKafkaPublisher(producer, timeout, log)
}

func newKafkaPublisher(producer messagePublisher, timeout time.Duration, log *logger.Logger) *kafkaPublisher {
	return &kafkaPublisher{producer: producer, timeout: timeout, log: log}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	builder := kafka.NewMessage()
	for k, v := range telemetry.TraceHeaders(ctx) {
		builder.WithHeader(k, v)
	}

	msg, err := builder.
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventType(event.Type).
		WithCorrelationID(logger.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(occurred).
		Build()
	if err != nil {
		err = kafka.NewPermanentError("failed to build event", err)
		p.log.Error("Failed to build event",
			"event_type", event.Type,
			"key", event.Key,
			"error_type", kafka.ClassifyError(err).String(),
			"error", err,
		)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, msg); err != nil {
		if pubCtx.Err() != nil {
			err = kafka.NewTransientError("publish deadline exceeded", err)
		}
		p.log.Warn("Failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"error_type", kafka.ClassifyError(err).String(),
			"error", err,
		)
	}
}

type noopPublisher struct{}

// Noop discards every event. It is used when Kafka is disabled.
func Noop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) {}
