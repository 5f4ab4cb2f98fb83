package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// ChangeProjectStatusCommand transitions a project to a new lifecycle status.
type ChangeProjectStatusCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Status    domain.Status
}

// ChangeProjectStatusHandler handles the ChangeProjectStatusCommand.
type ChangeProjectStatusHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
}

// NewChangeProjectStatusHandler creates a new ChangeProjectStatusHandler.
func NewChangeProjectStatusHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
) *ChangeProjectStatusHandler {
	return &ChangeProjectStatusHandler{
		projectRepo: projectRepo,
		uow:         uow,
	}
}

// Handle executes the ChangeProjectStatusCommand.
func (h *ChangeProjectStatusHandler) Handle(ctx context.Context, cmd ChangeProjectStatusCommand) error {
	if !cmd.Status.IsValid() {
		return domain.ErrInvalidStatus
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		project, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		if err := project.UpdateStatus(cmd.Status); err != nil {
			return err
		}

		return h.projectRepo.Save(txCtx, project)
	})
}
