package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// SetManualHealthCommand switches a project to manual health mode with the
// given color and percentage.
type SetManualHealthCommand struct {
	ProjectID  uuid.UUID
	UserID     uuid.UUID
	Color      domain.Color
	Percentage int
}

// SetManualHealthHandler handles the SetManualHealthCommand.
type SetManualHealthHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
	now         func() time.Time
}

// NewSetManualHealthHandler creates a new SetManualHealthHandler.
func NewSetManualHealthHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *SetManualHealthHandler {
	return &SetManualHealthHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Handle executes the SetManualHealthCommand. The stored health snapshot is
// refreshed immediately so reads never see the old automatic value.
func (h *SetManualHealthHandler) Handle(ctx context.Context, cmd SetManualHealthCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		if err := found.SetManualHealth(cmd.Color, cmd.Percentage); err != nil {
			return err
		}
		found.RecordHealth(domain.ComputeHealth(found, h.now()))

		if err := h.projectRepo.Save(txCtx, found); err != nil {
			return err
		}

		project = found
		return nil
	})
	if err != nil {
		return err
	}

	return drainEvents(ctx, h.publisher, project)
}

// UseAutomaticHealthCommand switches a project back to automatic health
// calculation.
type UseAutomaticHealthCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

// UseAutomaticHealthHandler handles the UseAutomaticHealthCommand.
type UseAutomaticHealthHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
	now         func() time.Time
}

// NewUseAutomaticHealthHandler creates a new UseAutomaticHealthHandler.
func NewUseAutomaticHealthHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *UseAutomaticHealthHandler {
	return &UseAutomaticHealthHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Handle executes the UseAutomaticHealthCommand. Dates and health are
// recomputed from milestones right away.
func (h *UseAutomaticHealthHandler) Handle(ctx context.Context, cmd UseAutomaticHealthCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		found.UseAutomaticHealth()

		today := h.now()
		duration := domain.ComputeDuration(found.Milestones(), today)
		found.SyncDates(duration)
		found.RecordHealth(domain.ComputeHealth(found, today))

		if err := h.projectRepo.Save(txCtx, found); err != nil {
			return err
		}

		project = found
		return nil
	})
	if err != nil {
		return err
	}

	return drainEvents(ctx, h.publisher, project)
}
