package application

import (
	"context"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// EventPublisher pushes recorded domain events onto the event bus after the
// owning transaction commits.
type EventPublisher interface {
	PublishEvents(ctx context.Context, events []domain.DomainEvent) error
}
