package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// DeleteMilestoneCommand contains the data needed to delete a milestone.
type DeleteMilestoneCommand struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	MilestoneID uuid.UUID
}

// DeleteMilestoneHandler handles the DeleteMilestoneCommand.
type DeleteMilestoneHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
}

// NewDeleteMilestoneHandler creates a new DeleteMilestoneHandler.
func NewDeleteMilestoneHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *DeleteMilestoneHandler {
	return &DeleteMilestoneHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// Handle executes the DeleteMilestoneCommand.
func (h *DeleteMilestoneHandler) Handle(ctx context.Context, cmd DeleteMilestoneCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		if !found.RemoveMilestone(cmd.MilestoneID) {
			return domain.ErrMilestoneNotFound
		}

		// Save prunes milestone rows no longer in the aggregate.
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
