package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// AddMilestoneCommand contains the data needed to add a milestone to a project.
// The date may be nil for milestones that are not scheduled yet.
type AddMilestoneCommand struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Date        *time.Time
	EndDate     *time.Time
	Weight      *int
	Completion  *int
}

// AddMilestoneResult contains the result of adding a milestone.
type AddMilestoneResult struct {
	MilestoneID uuid.UUID
}

// AddMilestoneHandler handles the AddMilestoneCommand.
type AddMilestoneHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
}

// NewAddMilestoneHandler creates a new AddMilestoneHandler.
func NewAddMilestoneHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *AddMilestoneHandler {
	return &AddMilestoneHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// Handle executes the AddMilestoneCommand.
func (h *AddMilestoneHandler) Handle(ctx context.Context, cmd AddMilestoneCommand) (*AddMilestoneResult, error) {
	var result *AddMilestoneResult
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		milestone := found.AddMilestone(cmd.Name, cmd.Date)

		if cmd.Description != "" {
			milestone.SetDescription(cmd.Description)
		}
		if cmd.EndDate != nil {
			milestone.SetEndDate(cmd.EndDate)
		}
		if cmd.Weight != nil {
			milestone.SetWeight(*cmd.Weight)
		}
		if cmd.Completion != nil {
			milestone.SetCompletion(*cmd.Completion)
		}

		if err := h.projectRepo.Save(txCtx, found); err != nil {
			return err
		}

		project = found
		result = &AddMilestoneResult{MilestoneID: milestone.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := drainEvents(ctx, h.publisher, project); err != nil {
		return nil, err
	}

	return result, nil
}
