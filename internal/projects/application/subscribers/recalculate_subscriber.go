package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

// RecalculateSubscriber listens for milestone and date change events and
// refreshes the affected project's derived dates and health snapshot.
type RecalculateSubscriber struct {
	recalcHandler *commands.RecalculateHealthHandler
	logger        *slog.Logger
	metrics       observability.Metrics
}

// NewRecalculateSubscriber creates a new RecalculateSubscriber.
func NewRecalculateSubscriber(
	recalcHandler *commands.RecalculateHealthHandler,
	logger *slog.Logger,
) *RecalculateSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecalculateSubscriber{
		recalcHandler: recalcHandler,
		logger:        logger,
		metrics:       observability.NoopMetrics{},
	}
}

// WithMetrics sets the metrics collector used for recalculation counters.
func (s *RecalculateSubscriber) WithMetrics(metrics observability.Metrics) *RecalculateSubscriber {
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// EventTypes returns the event types this subscriber handles.
func (s *RecalculateSubscriber) EventTypes() []string {
	return []string{
		domain.EventMilestonesChanged,
		domain.EventDatesChanged,
	}
}

// changePayload carries the fields shared by both change events.
type changePayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// Handle processes an event.
func (s *RecalculateSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload changePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		// Without a user ID the project cannot be loaded; drop the message.
		s.logger.Error("failed to unmarshal change event payload",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			"error", err,
		)
		return nil
	}
	if payload.UserID == uuid.Nil {
		s.logger.Warn("change event without user id, skipping",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	timer := observability.StartTimer("recalculate_health").
		WithMetrics(s.metrics).
		WithTags(observability.T("routing_key", event.RoutingKey))

	result, err := s.recalcHandler.Handle(ctx, commands.RecalculateHealthCommand{
		ProjectID: event.AggregateID,
		UserID:    payload.UserID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			// Deleted before the event drained; nothing left to recompute.
			s.logger.Debug("project gone, skipping recalculation",
				"project_id", event.AggregateID,
			)
			timer.Stop()
			return nil
		}
		timer.StopWithError(err)
		s.metrics.Counter(observability.MetricHealthRecalcErrors, 1)
		return err
	}
	timer.Stop()
	s.metrics.Counter(observability.MetricHealthRecalculations, 1)

	s.logger.Info("project health recalculated",
		"project_id", event.AggregateID,
		"color", result.Health.Color.String(),
		"percentage", result.Health.Percentage,
	)
	return nil
}
