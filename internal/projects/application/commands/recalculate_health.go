package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// HealthCache stores computed health snapshots for fast dashboard reads.
type HealthCache interface {
	Set(ctx context.Context, userID, projectID uuid.UUID, health domain.Health) error
}

// RecalculateHealthCommand recomputes a project's duration, dates and health
// from its milestones. Today may be zero to use the current date.
type RecalculateHealthCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Today     time.Time
}

// RecalculateHealthResult carries the recomputed snapshot back to the caller.
type RecalculateHealthResult struct {
	Health   domain.Health
	Duration domain.Duration
}

// RecalculateHealthHandler handles the RecalculateHealthCommand. It is the
// single write path for derived project state: CLI commands run it inline and
// the worker runs it when milestone or date change events arrive.
type RecalculateHealthHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
	cache       HealthCache
	now         func() time.Time
}

// NewRecalculateHealthHandler creates a new RecalculateHealthHandler.
// The cache may be nil when no Redis is configured.
func NewRecalculateHealthHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
	cache HealthCache,
) *RecalculateHealthHandler {
	return &RecalculateHealthHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
		cache:       cache,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (h *RecalculateHealthHandler) WithClock(now func() time.Time) *RecalculateHealthHandler {
	h.now = now
	return h
}

// Handle executes the RecalculateHealthCommand.
func (h *RecalculateHealthHandler) Handle(ctx context.Context, cmd RecalculateHealthCommand) (*RecalculateHealthResult, error) {
	today := cmd.Today
	if today.IsZero() {
		today = h.now()
	}

	var result *RecalculateHealthResult
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		found.SyncDates(domain.ComputeDuration(found.Milestones(), today))

		health := domain.ComputeHealth(found, today)
		found.RecordHealth(health)

		if err := h.projectRepo.Save(txCtx, found); err != nil {
			return err
		}

		project = found
		result = &RecalculateHealthResult{
			Health:   health,
			Duration: domain.ProjectDuration(found, today),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := drainEvents(ctx, h.publisher, project); err != nil {
		return nil, err
	}

	if h.cache != nil {
		// The cache is a read accelerator; persistence already succeeded.
		_ = h.cache.Set(ctx, cmd.UserID, cmd.ProjectID, result.Health)
	}

	return result, nil
}
