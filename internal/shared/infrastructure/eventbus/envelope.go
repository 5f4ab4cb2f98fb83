package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// EncodeDomainEvent wraps a domain event in the wire envelope consumed on
// the other side of the bus. The event itself is embedded as the payload so
// consumers can decode event-specific fields without knowing the concrete
// Go type.
func EncodeDomainEvent(event domain.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	}

	return json.Marshal(envelope)
}

// DomainEventPublisher adapts a Publisher to the application layer's
// EventPublisher port.
type DomainEventPublisher struct {
	publisher Publisher
}

// NewDomainEventPublisher creates a new DomainEventPublisher.
func NewDomainEventPublisher(publisher Publisher) *DomainEventPublisher {
	return &DomainEventPublisher{publisher: publisher}
}

// PublishEvents envelopes and publishes each domain event in order.
func (p *DomainEventPublisher) PublishEvents(ctx context.Context, events []domain.DomainEvent) error {
	return PublishAll(ctx, p.publisher, events)
}

// PublishAll publishes every domain event through the given publisher.
// Publishing stops at the first failure.
func PublishAll(ctx context.Context, publisher Publisher, events []domain.DomainEvent) error {
	for _, event := range events {
		body, err := EncodeDomainEvent(event)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, event.RoutingKey(), body); err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.RoutingKey(), err)
		}
	}
	return nil
}
