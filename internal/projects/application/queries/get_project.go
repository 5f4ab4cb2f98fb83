package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

// ProjectDTO is a data transfer object for projects. Duration, time remaining
// and health are derived from the milestones at read time.
type ProjectDTO struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Status          string
	CalculationType string
	StartDate       *time.Time
	EndDate         *time.Time
	DatesOverridden bool
	Completion      int
	Duration        DurationDTO
	TimeRemaining   TimeRemainingDTO
	Health          HealthDTO
	Milestones      []MilestoneDTO
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DurationDTO carries the computed timeline spans.
type DurationDTO struct {
	StartDate            *time.Time
	EndDate              *time.Time
	TotalDays            *int
	WorkingDays          *int
	TotalDaysRemaining   *int
	WorkingDaysRemaining *int
}

// TimeRemainingDTO carries the classified time-remaining figure.
type TimeRemainingDTO struct {
	Percentage *int
	Bucket     string
}

// HealthDTO carries a health snapshot.
type HealthDTO struct {
	Color      string
	Percentage int
	Reasoning  string
}

// MilestoneDTO is a data transfer object for milestones.
type MilestoneDTO struct {
	ID          uuid.UUID
	Name        string
	Description string
	Date        *time.Time
	EndDate     *time.Time
	Completion  int
	Weight      int
	Status      string
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetProjectQuery contains the parameters for getting a project.
type GetProjectQuery struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Today     time.Time // zero means the current date
}

// GetProjectHandler handles the GetProjectQuery.
type GetProjectHandler struct {
	projectRepo domain.Repository
	now         func() time.Time
}

// NewGetProjectHandler creates a new GetProjectHandler.
func NewGetProjectHandler(projectRepo domain.Repository) *GetProjectHandler {
	return &GetProjectHandler{projectRepo: projectRepo, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (h *GetProjectHandler) WithClock(now func() time.Time) *GetProjectHandler {
	h.now = now
	return h
}

// Handle executes the GetProjectQuery.
func (h *GetProjectHandler) Handle(ctx context.Context, query GetProjectQuery) (*ProjectDTO, error) {
	project, err := h.projectRepo.FindByID(ctx, query.ProjectID, query.UserID)
	if err != nil {
		return nil, err
	}

	today := query.Today
	if today.IsZero() {
		today = h.now()
	}

	return toProjectDTO(project, today), nil
}

func toProjectDTO(project *domain.Project, today time.Time) *ProjectDTO {
	milestones := make([]MilestoneDTO, len(project.Milestones()))
	for i, m := range project.Milestones() {
		milestones[i] = toMilestoneDTO(m)
	}

	duration := domain.ProjectDuration(project, today)
	remaining := domain.ClassifyTimeRemaining(duration)
	health := domain.ComputeHealth(project, today)

	return &ProjectDTO{
		ID:              project.ID(),
		Name:            project.Name(),
		Description:     project.Description(),
		Status:          project.Status().String(),
		CalculationType: project.CalculationType().String(),
		StartDate:       project.StartDate(),
		EndDate:         project.EndDate(),
		DatesOverridden: project.DatesOverridden(),
		Completion:      domain.WeightedCompletion(project.Milestones()),
		Duration:        toDurationDTO(duration),
		TimeRemaining: TimeRemainingDTO{
			Percentage: remaining.Percentage,
			Bucket:     remaining.Bucket.String(),
		},
		Health: HealthDTO{
			Color:      health.Color.String(),
			Percentage: health.Percentage,
			Reasoning:  health.Reasoning,
		},
		Milestones: milestones,
		CreatedAt:  project.CreatedAt(),
		UpdatedAt:  project.UpdatedAt(),
	}
}

func toDurationDTO(d domain.Duration) DurationDTO {
	return DurationDTO{
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		TotalDays:            d.TotalDays,
		WorkingDays:          d.WorkingDays,
		TotalDaysRemaining:   d.TotalDaysRemaining,
		WorkingDaysRemaining: d.WorkingDaysRemaining,
	}
}

func toMilestoneDTO(milestone *domain.Milestone) MilestoneDTO {
	return MilestoneDTO{
		ID:          milestone.ID(),
		Name:        milestone.Name(),
		Description: milestone.Description(),
		Date:        milestone.Date(),
		EndDate:     milestone.EndDate(),
		Completion:  milestone.Completion(),
		Weight:      milestone.Weight(),
		Status:      milestone.Status().String(),
		Order:       milestone.Order(),
		CreatedAt:   milestone.CreatedAt(),
		UpdatedAt:   milestone.UpdatedAt(),
	}
}
