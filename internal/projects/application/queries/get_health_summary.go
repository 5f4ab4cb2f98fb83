package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

// HealthCacheReader reads previously computed health snapshots.
type HealthCacheReader interface {
	Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Health, error)
}

// HealthSummaryDTO is the health snapshot returned to dashboards.
type HealthSummaryDTO struct {
	ProjectID uuid.UUID
	Health    HealthDTO
	Cached    bool
}

// GetHealthSummaryQuery contains the parameters for reading project health.
type GetHealthSummaryQuery struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Fresh     bool // bypass the cache and recompute
	Today     time.Time
}

// GetHealthSummaryHandler handles the GetHealthSummaryQuery. It serves from
// the cache when possible and falls back to computing from the aggregate.
type GetHealthSummaryHandler struct {
	projectRepo domain.Repository
	cache       HealthCacheReader
	now         func() time.Time
}

// NewGetHealthSummaryHandler creates a new GetHealthSummaryHandler.
// The cache may be nil when no Redis is configured.
func NewGetHealthSummaryHandler(projectRepo domain.Repository, cache HealthCacheReader) *GetHealthSummaryHandler {
	return &GetHealthSummaryHandler{
		projectRepo: projectRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (h *GetHealthSummaryHandler) WithClock(now func() time.Time) *GetHealthSummaryHandler {
	h.now = now
	return h
}

// Handle executes the GetHealthSummaryQuery.
func (h *GetHealthSummaryHandler) Handle(ctx context.Context, query GetHealthSummaryQuery) (*HealthSummaryDTO, error) {
	if h.cache != nil && !query.Fresh {
		// Cache misses and errors both fall through to recomputation.
		if cached, err := h.cache.Get(ctx, query.UserID, query.ProjectID); err == nil && cached != nil {
			return &HealthSummaryDTO{
				ProjectID: query.ProjectID,
				Health: HealthDTO{
					Color:      cached.Color.String(),
					Percentage: cached.Percentage,
					Reasoning:  cached.Reasoning,
				},
				Cached: true,
			}, nil
		}
	}

	project, err := h.projectRepo.FindByID(ctx, query.ProjectID, query.UserID)
	if err != nil {
		return nil, err
	}

	today := query.Today
	if today.IsZero() {
		today = h.now()
	}

	health := domain.ComputeHealth(project, today)
	return &HealthSummaryDTO{
		ProjectID: query.ProjectID,
		Health: HealthDTO{
			Color:      health.Color.String(),
			Percentage: health.Percentage,
			Reasoning:  health.Reasoning,
		},
		Cached: false,
	}, nil
}
