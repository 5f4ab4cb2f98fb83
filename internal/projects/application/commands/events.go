package commands

import (
	"context"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// drainEvents publishes the project's recorded domain events and clears them.
// Called after the unit of work commits so consumers never see uncommitted
// state. A nil publisher disables publishing.
func drainEvents(ctx context.Context, publisher sharedApplication.EventPublisher, project *domain.Project) error {
	if publisher == nil || project == nil {
		return nil
	}

	events := project.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	project.ClearDomainEvents()

	return publisher.PublishEvents(ctx, events)
}
