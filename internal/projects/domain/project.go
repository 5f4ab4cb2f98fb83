package domain

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Project tracks an organizational initiative whose health and timeline are
// derived from its milestones. The stored start/end dates follow the
// milestones automatically until a caller overrides them, and the stored
// health snapshot is refreshed by the recalculation pipeline.
type Project struct {
	sharedDomain.BaseAggregateRoot
	userID           uuid.UUID
	name             string
	description      string
	status           Status
	calculationType  CalculationType
	manualColor      *Color
	manualPercentage *int
	startDate        *time.Time
	endDate          *time.Time
	datesOverridden  bool
	health           *Health
	milestones       []*Milestone
}

// NewProject creates a new project in draft status with automatic health
// calculation and milestone-derived dates.
func NewProject(userID uuid.UUID, name string) (*Project, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Project{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		description:       "",
		status:            StatusDraft,
		calculationType:   CalculationAutomatic,
		milestones:        []*Milestone{},
	}, nil
}

// Getters
func (p *Project) UserID() uuid.UUID                { return p.userID }
func (p *Project) Name() string                     { return p.name }
func (p *Project) Description() string              { return p.description }
func (p *Project) Status() Status                   { return p.status }
func (p *Project) CalculationType() CalculationType { return p.calculationType }
func (p *Project) ManualColor() *Color              { return p.manualColor }
func (p *Project) ManualPercentage() *int           { return p.manualPercentage }
func (p *Project) StartDate() *time.Time            { return p.startDate }
func (p *Project) EndDate() *time.Time              { return p.endDate }
func (p *Project) DatesOverridden() bool            { return p.datesOverridden }
func (p *Project) Health() *Health                  { return p.health }
func (p *Project) Milestones() []*Milestone         { return p.milestones }

// SetName updates the project name.
func (p *Project) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.name = name
	p.Touch()
	return nil
}

// SetDescription updates the project description.
func (p *Project) SetDescription(description string) {
	p.description = description
	p.Touch()
}

// UpdateStatus transitions the project to a new lifecycle status.
func (p *Project) UpdateStatus(newStatus Status) error {
	if !p.status.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}
	p.status = newStatus
	p.Touch()
	return nil
}

// Start transitions the project to active status.
func (p *Project) Start() error {
	return p.UpdateStatus(StatusActive)
}

// Complete marks the project as completed.
func (p *Project) Complete() error {
	return p.UpdateStatus(StatusCompleted)
}

// Cancel abandons the project.
func (p *Project) Cancel() error {
	return p.UpdateStatus(StatusCancelled)
}

// PutOnHold pauses the project.
func (p *Project) PutOnHold() error {
	return p.UpdateStatus(StatusOnHold)
}

// Resume transitions a project from on_hold back to active.
func (p *Project) Resume() error {
	return p.UpdateStatus(StatusActive)
}

// SetManualHealth switches health calculation to manual mode with the given
// color and percentage. The percentage is clamped to 0-100.
func (p *Project) SetManualHealth(color Color, percentage int) error {
	if !color.IsValid() {
		return ErrInvalidColor
	}
	pct := clampCompletion(percentage)
	p.calculationType = CalculationManual
	p.manualColor = &color
	p.manualPercentage = &pct
	p.Touch()
	return nil
}

// UseAutomaticHealth switches back to automatic health calculation and
// discards the manual override fields.
func (p *Project) UseAutomaticHealth() {
	p.calculationType = CalculationAutomatic
	p.manualColor = nil
	p.manualPercentage = nil
	p.Touch()
}

// RecordHealth stores a freshly computed health snapshot on the aggregate
// so the persistence layer can write it back for dashboards.
func (p *Project) RecordHealth(health Health) {
	h := health
	p.health = &h
	p.Touch()
	p.AddDomainEvent(NewHealthRecalculatedEvent(p.ID(), p.userID, health))
}

// AddMilestone adds a milestone to the project. The date may be nil.
func (p *Project) AddMilestone(name string, date *time.Time) *Milestone {
	milestone := NewMilestone(p.ID(), name, date)
	milestone.SetOrder(len(p.milestones))
	p.milestones = append(p.milestones, milestone)
	p.Touch()
	p.AddDomainEvent(NewMilestonesChangedEvent(p.ID(), p.userID))
	return milestone
}

// FindMilestone finds a milestone by ID.
func (p *Project) FindMilestone(milestoneID uuid.UUID) *Milestone {
	for _, m := range p.milestones {
		if m.ID() == milestoneID {
			return m
		}
	}
	return nil
}

// RemoveMilestone removes a milestone from the project.
func (p *Project) RemoveMilestone(milestoneID uuid.UUID) bool {
	for i, m := range p.milestones {
		if m.ID() == milestoneID {
			p.milestones = append(p.milestones[:i], p.milestones[i+1:]...)
			p.Touch()
			p.AddDomainEvent(NewMilestonesChangedEvent(p.ID(), p.userID))
			return true
		}
	}
	return false
}

// MarkMilestonesChanged records a change event after in-place milestone
// edits so the recompute pipeline picks them up.
func (p *Project) MarkMilestonesChanged() {
	p.Touch()
	p.AddDomainEvent(NewMilestonesChangedEvent(p.ID(), p.userID))
}

// RehydrateProject recreates a project from persisted data.
func RehydrateProject(
	id, userID uuid.UUID,
	name, description string,
	status Status,
	calculationType CalculationType,
	manualColor *Color,
	manualPercentage *int,
	startDate, endDate *time.Time,
	datesOverridden bool,
	health *Health,
	milestones []*Milestone,
	createdAt, updatedAt time.Time,
) *Project {
	return &Project{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(id, createdAt, updatedAt),
		userID:            userID,
		name:              name,
		description:       description,
		status:            status,
		calculationType:   calculationType,
		manualColor:       manualColor,
		manualPercentage:  manualPercentage,
		startDate:         cloneTime(startDate),
		endDate:           cloneTime(endDate),
		datesOverridden:   datesOverridden,
		health:            health,
		milestones:        milestones,
	}
}

// Repository defines the interface for project persistence.
type Repository interface {
	// Save persists a project and its milestones (create or update).
	Save(ctx context.Context, project *Project) error

	// FindByID finds a project by ID for a specific user.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Project, error)

	// FindByUser finds all projects for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)

	// FindByStatus finds projects by lifecycle status for a user.
	FindByStatus(ctx context.Context, userID uuid.UUID, status Status) ([]*Project, error)

	// FindActive finds all non-terminal projects for a user.
	FindActive(ctx context.Context, userID uuid.UUID) ([]*Project, error)

	// Delete removes a project.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error

	// SaveMilestone persists a milestone.
	SaveMilestone(ctx context.Context, milestone *Milestone) error

	// FindMilestonesByProject finds all milestones for a project.
	FindMilestonesByProject(ctx context.Context, projectID uuid.UUID) ([]*Milestone, error)

	// DeleteMilestone removes a milestone.
	DeleteMilestone(ctx context.Context, id uuid.UUID) error
}
