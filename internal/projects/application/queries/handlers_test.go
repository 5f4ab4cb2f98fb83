package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

// mockProjectRepo is a mock implementation of domain.Repository.
type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Save(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) FindByStatus(ctx context.Context, userID uuid.UUID, status domain.Status) ([]*domain.Project, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) FindActive(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockProjectRepo) SaveMilestone(ctx context.Context, milestone *domain.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *mockProjectRepo) FindMilestonesByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Milestone), args.Error(1)
}

func (m *mockProjectRepo) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockHealthCacheReader is a mock implementation of HealthCacheReader.
type mockHealthCacheReader struct {
	mock.Mock
}

func (m *mockHealthCacheReader) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Health, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Health), args.Error(1)
}

func dateOn(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestGetProjectHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)

	t.Run("derives duration, completion and health", func(t *testing.T) {
		project, err := domain.NewProject(userID, "Website relaunch")
		require.NoError(t, err)
		require.NoError(t, project.Start())

		first := project.AddMilestone("Design", dateOn(2026, time.January, 1))
		first.SetCompletion(100)
		second := project.AddMilestone("Build", dateOn(2026, time.January, 5))
		second.SetCompletion(0)

		repo := new(mockProjectRepo)
		repo.On("FindByID", mock.Anything, project.ID(), userID).Return(project, nil)

		handler := NewGetProjectHandler(repo)
		dto, err := handler.Handle(context.Background(), GetProjectQuery{
			ProjectID: project.ID(),
			UserID:    userID,
			Today:     today,
		})

		require.NoError(t, err)
		assert.Equal(t, "Website relaunch", dto.Name)
		assert.Equal(t, "active", dto.Status)
		assert.Equal(t, 50, dto.Completion)

		// Jan 1 through Jan 5 is an inclusive five-day span.
		require.NotNil(t, dto.Duration.TotalDays)
		assert.Equal(t, 5, *dto.Duration.TotalDays)
		require.NotNil(t, dto.Duration.TotalDaysRemaining)
		assert.Equal(t, 2, *dto.Duration.TotalDaysRemaining)

		require.NotNil(t, dto.TimeRemaining.Percentage)
		assert.Equal(t, 40, *dto.TimeRemaining.Percentage)
		assert.Equal(t, "plenty", dto.TimeRemaining.Bucket)

		assert.Equal(t, "green", dto.Health.Color)
		require.Len(t, dto.Milestones, 2)
	})

	t.Run("overridden dates drive the timeline", func(t *testing.T) {
		project, err := domain.NewProject(userID, "Pinned")
		require.NoError(t, err)
		require.NoError(t, project.Start())
		project.AddMilestone("Far out", dateOn(2026, time.June, 30))
		project.OverrideDates(dateOn(2026, time.January, 1), dateOn(2026, time.January, 10))

		repo := new(mockProjectRepo)
		repo.On("FindByID", mock.Anything, project.ID(), userID).Return(project, nil)

		handler := NewGetProjectHandler(repo)
		dto, err := handler.Handle(context.Background(), GetProjectQuery{
			ProjectID: project.ID(),
			UserID:    userID,
			Today:     today,
		})

		require.NoError(t, err)
		assert.True(t, dto.DatesOverridden)
		require.NotNil(t, dto.Duration.TotalDays)
		assert.Equal(t, 10, *dto.Duration.TotalDays)
		require.NotNil(t, dto.Duration.EndDate)
		assert.True(t, dto.Duration.EndDate.Equal(*dateOn(2026, time.January, 10)))
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(mockProjectRepo)
		projectID := uuid.New()
		repo.On("FindByID", mock.Anything, projectID, userID).Return(nil, domain.ErrProjectNotFound)

		handler := NewGetProjectHandler(repo)
		_, err := handler.Handle(context.Background(), GetProjectQuery{ProjectID: projectID, UserID: userID})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestListProjectsHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	newProject := func(name string) *domain.Project {
		p, err := domain.NewProject(userID, name)
		require.NoError(t, err)
		return p
	}

	t.Run("lists all projects with derived health", func(t *testing.T) {
		projects := []*domain.Project{newProject("One"), newProject("Two")}

		repo := new(mockProjectRepo)
		repo.On("FindByUser", mock.Anything, userID).Return(projects, nil)

		handler := NewListProjectsHandler(repo)
		items, err := handler.Handle(context.Background(), ListProjectsQuery{UserID: userID, Today: today})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "One", items[0].Name)
		// Draft projects classify yellow.
		assert.Equal(t, "yellow", items[0].Health.Color)
		assert.Equal(t, "unknown", items[0].TimeBucket)
	})

	t.Run("filters by status", func(t *testing.T) {
		repo := new(mockProjectRepo)
		repo.On("FindByStatus", mock.Anything, userID, domain.StatusActive).
			Return([]*domain.Project{}, nil)

		handler := NewListProjectsHandler(repo)
		items, err := handler.Handle(context.Background(), ListProjectsQuery{
			UserID: userID,
			Status: "active",
			Today:  today,
		})

		require.NoError(t, err)
		assert.Empty(t, items)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		handler := NewListProjectsHandler(new(mockProjectRepo))
		_, err := handler.Handle(context.Background(), ListProjectsQuery{
			UserID: userID,
			Status: "archived",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("active only uses FindActive", func(t *testing.T) {
		repo := new(mockProjectRepo)
		repo.On("FindActive", mock.Anything, userID).Return([]*domain.Project{}, nil)

		handler := NewListProjectsHandler(repo)
		_, err := handler.Handle(context.Background(), ListProjectsQuery{
			UserID:     userID,
			ActiveOnly: true,
			Today:      today,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGetHealthSummaryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("serves from cache when available", func(t *testing.T) {
		projectID := uuid.New()
		repo := new(mockProjectRepo)
		cache := new(mockHealthCacheReader)
		cache.On("Get", mock.Anything, userID, projectID).Return(&domain.Health{
			Color:      domain.ColorGreen,
			Percentage: 80,
			Reasoning:  "cached",
		}, nil)

		handler := NewGetHealthSummaryHandler(repo, cache)
		summary, err := handler.Handle(context.Background(), GetHealthSummaryQuery{
			ProjectID: projectID,
			UserID:    userID,
		})

		require.NoError(t, err)
		assert.True(t, summary.Cached)
		assert.Equal(t, "green", summary.Health.Color)
		assert.Equal(t, 80, summary.Health.Percentage)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("computes on cache miss", func(t *testing.T) {
		project, err := domain.NewProject(userID, "Uncached")
		require.NoError(t, err)
		require.NoError(t, project.Start())

		repo := new(mockProjectRepo)
		cache := new(mockHealthCacheReader)
		cache.On("Get", mock.Anything, userID, project.ID()).Return(nil, errors.New("not cached"))
		repo.On("FindByID", mock.Anything, project.ID(), userID).Return(project, nil)

		handler := NewGetHealthSummaryHandler(repo, cache)
		summary, err := handler.Handle(context.Background(), GetHealthSummaryQuery{
			ProjectID: project.ID(),
			UserID:    userID,
			Today:     today,
		})

		require.NoError(t, err)
		assert.False(t, summary.Cached)
		assert.Equal(t, "green", summary.Health.Color)
		assert.Equal(t, "active project with no milestones yet", summary.Health.Reasoning)
	})

	t.Run("fresh bypasses the cache", func(t *testing.T) {
		project, err := domain.NewProject(userID, "Fresh read")
		require.NoError(t, err)

		repo := new(mockProjectRepo)
		cache := new(mockHealthCacheReader)
		repo.On("FindByID", mock.Anything, project.ID(), userID).Return(project, nil)

		handler := NewGetHealthSummaryHandler(repo, cache)
		summary, err := handler.Handle(context.Background(), GetHealthSummaryQuery{
			ProjectID: project.ID(),
			UserID:    userID,
			Fresh:     true,
			Today:     today,
		})

		require.NoError(t, err)
		assert.False(t, summary.Cached)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}
