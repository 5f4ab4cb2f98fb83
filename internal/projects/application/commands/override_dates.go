package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// OverrideDatesCommand pins the project's start and end dates so they stop
// following the milestones.
type OverrideDatesCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// OverrideDatesHandler handles the OverrideDatesCommand.
type OverrideDatesHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
}

// NewOverrideDatesHandler creates a new OverrideDatesHandler.
func NewOverrideDatesHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *OverrideDatesHandler {
	return &OverrideDatesHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// Handle executes the OverrideDatesCommand.
func (h *OverrideDatesHandler) Handle(ctx context.Context, cmd OverrideDatesCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		found.OverrideDates(cmd.StartDate, cmd.EndDate)

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

// ResetDatesCommand releases a date override so the dates follow the
// milestones again.
type ResetDatesCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

// ResetDatesHandler handles the ResetDatesCommand.
type ResetDatesHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
	now         func() time.Time
}

// NewResetDatesHandler creates a new ResetDatesHandler.
func NewResetDatesHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *ResetDatesHandler {
	return &ResetDatesHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Handle executes the ResetDatesCommand. The dates snap back to the
// milestone-derived values immediately.
func (h *ResetDatesHandler) Handle(ctx context.Context, cmd ResetDatesCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		duration := domain.ComputeDuration(found.Milestones(), h.now())
		found.ResetDates(duration)

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
