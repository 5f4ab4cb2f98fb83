package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

// ProjectListItemDTO is a lightweight data transfer object for project lists.
type ProjectListItemDTO struct {
	ID              uuid.UUID
	Name            string
	Status          string
	CalculationType string
	Completion      int
	Health          HealthDTO
	TimeBucket      string
	EndDate         *time.Time
	DatesOverridden bool
	MilestoneCount  int
	CreatedAt       time.Time
}

// ListProjectsQuery contains the parameters for listing projects.
type ListProjectsQuery struct {
	UserID     uuid.UUID
	Status     string // filter by lifecycle status, empty for all
	ActiveOnly bool   // only non-terminal projects
	Today      time.Time
}

// ListProjectsHandler handles the ListProjectsQuery.
type ListProjectsHandler struct {
	projectRepo domain.Repository
	now         func() time.Time
}

// NewListProjectsHandler creates a new ListProjectsHandler.
func NewListProjectsHandler(projectRepo domain.Repository) *ListProjectsHandler {
	return &ListProjectsHandler{projectRepo: projectRepo, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (h *ListProjectsHandler) WithClock(now func() time.Time) *ListProjectsHandler {
	h.now = now
	return h
}

// Handle executes the ListProjectsQuery.
func (h *ListProjectsHandler) Handle(ctx context.Context, query ListProjectsQuery) ([]ProjectListItemDTO, error) {
	var projects []*domain.Project
	var err error

	switch {
	case query.Status != "":
		status, parseErr := domain.ParseStatus(query.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		projects, err = h.projectRepo.FindByStatus(ctx, query.UserID, status)
	case query.ActiveOnly:
		projects, err = h.projectRepo.FindActive(ctx, query.UserID)
	default:
		projects, err = h.projectRepo.FindByUser(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	today := query.Today
	if today.IsZero() {
		today = h.now()
	}

	items := make([]ProjectListItemDTO, len(projects))
	for i, p := range projects {
		health := domain.ComputeHealth(p, today)
		remaining := domain.ClassifyTimeRemaining(domain.ProjectDuration(p, today))

		items[i] = ProjectListItemDTO{
			ID:              p.ID(),
			Name:            p.Name(),
			Status:          p.Status().String(),
			CalculationType: p.CalculationType().String(),
			Completion:      domain.WeightedCompletion(p.Milestones()),
			Health: HealthDTO{
				Color:      health.Color.String(),
				Percentage: health.Percentage,
				Reasoning:  health.Reasoning,
			},
			TimeBucket:      remaining.Bucket.String(),
			EndDate:         p.EndDate(),
			DatesOverridden: p.DatesOverridden(),
			MilestoneCount:  len(p.Milestones()),
			CreatedAt:       p.CreatedAt(),
		}
	}
	return items, nil
}
