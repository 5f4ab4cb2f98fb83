package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
)

// UpdateMilestoneCommand contains the data needed to update a milestone.
// Nil fields are left unchanged; ClearDate/ClearEndDate remove the dates.
type UpdateMilestoneCommand struct {
	ProjectID    uuid.UUID
	UserID       uuid.UUID
	MilestoneID  uuid.UUID
	Name         *string
	Description  *string
	Date         *time.Time
	ClearDate    bool
	EndDate      *time.Time
	ClearEndDate bool
	Completion   *int
	Weight       *int
	Status       *domain.MilestoneStatus
	Complete     bool
}

// UpdateMilestoneHandler handles the UpdateMilestoneCommand.
type UpdateMilestoneHandler struct {
	projectRepo domain.Repository
	uow         sharedApplication.UnitOfWork
	publisher   sharedApplication.EventPublisher
}

// NewUpdateMilestoneHandler creates a new UpdateMilestoneHandler.
func NewUpdateMilestoneHandler(
	projectRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	publisher sharedApplication.EventPublisher,
) *UpdateMilestoneHandler {
	return &UpdateMilestoneHandler{
		projectRepo: projectRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// Handle executes the UpdateMilestoneCommand.
func (h *UpdateMilestoneHandler) Handle(ctx context.Context, cmd UpdateMilestoneCommand) error {
	var project *domain.Project

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		found, err := h.projectRepo.FindByID(txCtx, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}

		milestone := found.FindMilestone(cmd.MilestoneID)
		if milestone == nil {
			return domain.ErrMilestoneNotFound
		}

		if cmd.Name != nil {
			milestone.SetName(*cmd.Name)
		}
		if cmd.Description != nil {
			milestone.SetDescription(*cmd.Description)
		}
		if cmd.ClearDate {
			milestone.SetDate(nil)
		} else if cmd.Date != nil {
			milestone.SetDate(cmd.Date)
		}
		if cmd.ClearEndDate {
			milestone.SetEndDate(nil)
		} else if cmd.EndDate != nil {
			milestone.SetEndDate(cmd.EndDate)
		}
		if cmd.Completion != nil {
			milestone.SetCompletion(*cmd.Completion)
		}
		if cmd.Weight != nil {
			milestone.SetWeight(*cmd.Weight)
		}
		if cmd.Status != nil {
			if err := milestone.UpdateStatus(*cmd.Status); err != nil {
				return err
			}
		}
		if cmd.Complete {
			milestone.Complete()
		}

		found.MarkMilestonesChanged()

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
