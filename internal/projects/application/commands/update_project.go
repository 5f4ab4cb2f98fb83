package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// UpdateProjectCommand contains the data needed to update a project.
// Nil fields are left unchanged.
type UpdateProjectCommand struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Description *string
}

// UpdateProjectHandler handles the UpdateProjectCommand.
type UpdateProjectHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
}

// NewUpdateProjectHandler creates a new UpdateProjectHandler.
func NewUpdateProjectHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
) *UpdateProjectHandler {
	return &UpdateProjectHandler{
		projectRepo: projectRepo,
		uow:         uow,
	}
}

// Handle executes the UpdateProjectCommand.
func (h *UpdateProjectHandler) Handle(ctx context.Context, cmd UpdateProjectCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		project, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		if cmd.Name != nil {
			if err := project.SetName(*cmd.Name); err != nil {
				return err
			}
		}

		if cmd.Description != nil {
			project.SetDescription(*cmd.Description)
		}

		return h.projectRepo.Save(txCtx, project)
	})
}
