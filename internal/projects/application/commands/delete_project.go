package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// DeleteProjectCommand removes a project and its milestones.
type DeleteProjectCommand struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

// DeleteProjectHandler handles the DeleteProjectCommand. Deletion emits no
// events; there is nothing left to recalculate for a removed project.
type DeleteProjectHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
}

// NewDeleteProjectHandler creates a new DeleteProjectHandler.
func NewDeleteProjectHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
) *DeleteProjectHandler {
	return &DeleteProjectHandler{
		projectRepo: projectRepo,
		uow:         uow,
	}
}

// Handle executes the DeleteProjectCommand.
func (h *DeleteProjectHandler) Handle(ctx context.Context, cmd DeleteProjectCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.projectRepo.Delete(txCtx, cmd.ProjectID, cmd.UserID)
	})
}
