package commands

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
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
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

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// capturingPublisher records published events instead of mocking call counts,
// so tests can assert on routing keys.
type capturingPublisher struct {
	events []sharedDomain.DomainEvent
	err    error
}

func (p *capturingPublisher) PublishEvents(_ context.Context, events []sharedDomain.DomainEvent) error {
	p.events = append(p.events, events...)
	return p.err
}

func (p *capturingPublisher) routingKeys() []string {
	keys := make([]string, len(p.events))
	for i, e := range p.events {
		keys[i] = e.RoutingKey()
	}
	return keys
}

// mockHealthCache is a mock implementation of HealthCache.
type mockHealthCache struct {
	mock.Mock
}

func (m *mockHealthCache) Set(ctx context.Context, userID, projectID uuid.UUID, health domain.Health) error {
	args := m.Called(ctx, userID, projectID, health)
	return args.Error(0)
}

type ctxKey string

func passthroughUow(ctx context.Context) (*mockUnitOfWork, context.Context) {
	uow := new(mockUnitOfWork)
	txCtx := context.WithValue(ctx, ctxKey("tx"), "transaction")
	uow.On("Begin", ctx).Return(txCtx, nil)
	uow.On("Commit", txCtx).Return(nil)
	return uow, txCtx
}

func newActiveProject(t *testing.T, userID uuid.UUID) *domain.Project {
	t.Helper()
	project, err := domain.NewProject(userID, "Launch")
	require.NoError(t, err)
	require.NoError(t, project.Start())
	project.ClearDomainEvents()
	return project
}

func dateOn(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// ============ CreateProjectHandler ============

func TestCreateProjectHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("successfully creates project", func(t *testing.T) {
		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Project")).Return(nil)

		handler := NewCreateProjectHandler(repo, uow)
		result, err := handler.Handle(ctx, CreateProjectCommand{
			UserID:      userID,
			Name:        "New initiative",
			Description: "Q4 work",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.ProjectID)

		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		uow.On("Rollback", txCtx).Return(nil)

		handler := NewCreateProjectHandler(repo, uow)
		result, err := handler.Handle(ctx, CreateProjectCommand{UserID: userID})

		assert.ErrorIs(t, err, domain.ErrEmptyName)
		assert.Nil(t, result)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when unit of work begin fails", func(t *testing.T) {
		repo := new(mockProjectRepo)
		uow := new(mockUnitOfWork)
		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, errors.New("database connection error"))

		handler := NewCreateProjectHandler(repo, uow)
		result, err := handler.Handle(ctx, CreateProjectCommand{UserID: userID, Name: "X"})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "database connection error")
	})
}

// ============ ChangeProjectStatusHandler ============

func TestChangeProjectStatusHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("transitions draft to active", func(t *testing.T) {
		project, err := domain.NewProject(userID, "Lifecycle")
		require.NoError(t, err)

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		handler := NewChangeProjectStatusHandler(repo, uow)
		err = handler.Handle(ctx, ChangeProjectStatusCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Status:    domain.StatusActive,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, project.Status())
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		project := newActiveProject(t, userID)
		require.NoError(t, project.Complete())

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)

		handler := NewChangeProjectStatusHandler(repo, uow)
		err := handler.Handle(ctx, ChangeProjectStatusCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Status:    domain.StatusActive,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		handler := NewChangeProjectStatusHandler(new(mockProjectRepo), new(mockUnitOfWork))
		err := handler.Handle(context.Background(), ChangeProjectStatusCommand{
			ProjectID: uuid.New(),
			UserID:    userID,
			Status:    domain.Status("archived"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

// ============ AddMilestoneHandler ============

func TestAddMilestoneHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("adds milestone and publishes change event", func(t *testing.T) {
		project := newActiveProject(t, userID)

		repo := new(mockProjectRepo)
		publisher := &capturingPublisher{}
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		weight := 5
		completion := 25
		handler := NewAddMilestoneHandler(repo, uow, publisher)
		result, err := handler.Handle(ctx, AddMilestoneCommand{
			ProjectID:  project.ID(),
			UserID:     userID,
			Name:       "Beta",
			Date:       dateOn(2026, time.October, 1),
			Weight:     &weight,
			Completion: &completion,
		})

		require.NoError(t, err)
		require.NotNil(t, result)

		milestone := project.FindMilestone(result.MilestoneID)
		require.NotNil(t, milestone)
		assert.Equal(t, 5, milestone.Weight())
		assert.Equal(t, 25, milestone.Completion())

		assert.Equal(t, []string{domain.EventMilestonesChanged}, publisher.routingKeys())
		assert.Empty(t, project.DomainEvents())
	})

	t.Run("out-of-range weight falls back to default", func(t *testing.T) {
		project := newActiveProject(t, userID)

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		weight := 11
		handler := NewAddMilestoneHandler(repo, uow, &capturingPublisher{})
		result, err := handler.Handle(ctx, AddMilestoneCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Name:      "Weighted",
			Weight:    &weight,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultWeight, project.FindMilestone(result.MilestoneID).Weight())
	})
}

// ============ UpdateMilestoneHandler ============

func TestUpdateMilestoneHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("updates fields and marks milestones changed", func(t *testing.T) {
		project := newActiveProject(t, userID)
		milestone := project.AddMilestone("Alpha", dateOn(2026, time.September, 1))
		project.ClearDomainEvents()

		repo := new(mockProjectRepo)
		publisher := &capturingPublisher{}
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		completion := 150 // clamped to 100
		handler := NewUpdateMilestoneHandler(repo, uow, publisher)
		err := handler.Handle(ctx, UpdateMilestoneCommand{
			ProjectID:   project.ID(),
			UserID:      userID,
			MilestoneID: milestone.ID(),
			Completion:  &completion,
			EndDate:     dateOn(2026, time.September, 15),
		})

		require.NoError(t, err)
		assert.Equal(t, 100, milestone.Completion())
		require.NotNil(t, milestone.EndDate())
		assert.Equal(t, []string{domain.EventMilestonesChanged}, publisher.routingKeys())
	})

	t.Run("clearing the date removes it from the timeline", func(t *testing.T) {
		project := newActiveProject(t, userID)
		milestone := project.AddMilestone("Scheduled", dateOn(2026, time.September, 1))
		project.ClearDomainEvents()

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		handler := NewUpdateMilestoneHandler(repo, uow, &capturingPublisher{})
		err := handler.Handle(ctx, UpdateMilestoneCommand{
			ProjectID:   project.ID(),
			UserID:      userID,
			MilestoneID: milestone.ID(),
			ClearDate:   true,
		})

		require.NoError(t, err)
		assert.Nil(t, milestone.Date())
	})

	t.Run("fails for unknown milestone", func(t *testing.T) {
		project := newActiveProject(t, userID)

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)

		handler := NewUpdateMilestoneHandler(repo, uow, &capturingPublisher{})
		err := handler.Handle(ctx, UpdateMilestoneCommand{
			ProjectID:   project.ID(),
			UserID:      userID,
			MilestoneID: uuid.New(),
		})

		assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
	})
}

// ============ DeleteMilestoneHandler ============

func TestDeleteMilestoneHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("removes milestone from aggregate", func(t *testing.T) {
		project := newActiveProject(t, userID)
		milestone := project.AddMilestone("Doomed", nil)
		project.ClearDomainEvents()

		repo := new(mockProjectRepo)
		publisher := &capturingPublisher{}
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		handler := NewDeleteMilestoneHandler(repo, uow, publisher)
		err := handler.Handle(ctx, DeleteMilestoneCommand{
			ProjectID:   project.ID(),
			UserID:      userID,
			MilestoneID: milestone.ID(),
		})

		require.NoError(t, err)
		assert.Nil(t, project.FindMilestone(milestone.ID()))
		assert.Equal(t, []string{domain.EventMilestonesChanged}, publisher.routingKeys())
	})
}

// ============ SetManualHealthHandler ============

func TestSetManualHealthHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("switches to manual mode and records snapshot", func(t *testing.T) {
		project := newActiveProject(t, userID)

		repo := new(mockProjectRepo)
		publisher := &capturingPublisher{}
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)

		handler := NewSetManualHealthHandler(repo, uow, publisher)
		err := handler.Handle(ctx, SetManualHealthCommand{
			ProjectID:  project.ID(),
			UserID:     userID,
			Color:      domain.ColorYellow,
			Percentage: 45,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.CalculationManual, project.CalculationType())
		require.NotNil(t, project.Health())
		assert.Equal(t, domain.ColorYellow, project.Health().Color)
		assert.Equal(t, 45, project.Health().Percentage)
		assert.Equal(t, []string{domain.EventHealthRecalculated}, publisher.routingKeys())
	})

	t.Run("rejects invalid color", func(t *testing.T) {
		project := newActiveProject(t, userID)

		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)

		handler := NewSetManualHealthHandler(repo, uow, &capturingPublisher{})
		err := handler.Handle(ctx, SetManualHealthCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Color:     domain.Color("purple"),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidColor)
	})
}

// ============ OverrideDates / ResetDates ============

func TestOverrideDatesHandler_Handle(t *testing.T) {
	userID := uuid.New()
	project := newActiveProject(t, userID)
	project.AddMilestone("M1", dateOn(2026, time.July, 1))
	project.ClearDomainEvents()

	repo := new(mockProjectRepo)
	publisher := &capturingPublisher{}
	ctx := context.Background()
	uow, txCtx := passthroughUow(ctx)
	repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
	repo.On("Save", txCtx, project).Return(nil)

	handler := NewOverrideDatesHandler(repo, uow, publisher)
	err := handler.Handle(ctx, OverrideDatesCommand{
		ProjectID: project.ID(),
		UserID:    userID,
		StartDate: dateOn(2026, time.June, 1),
		EndDate:   dateOn(2026, time.December, 31),
	})

	require.NoError(t, err)
	assert.True(t, project.DatesOverridden())
	require.NotNil(t, project.StartDate())
	assert.True(t, project.StartDate().Equal(*dateOn(2026, time.June, 1)))
	assert.Equal(t, []string{domain.EventDatesChanged}, publisher.routingKeys())
}

func TestResetDatesHandler_Handle(t *testing.T) {
	userID := uuid.New()
	project := newActiveProject(t, userID)
	project.AddMilestone("M1", dateOn(2026, time.July, 1))
	project.AddMilestone("M2", dateOn(2026, time.August, 15))
	project.OverrideDates(dateOn(2026, time.January, 1), dateOn(2026, time.December, 31))
	project.ClearDomainEvents()

	repo := new(mockProjectRepo)
	publisher := &capturingPublisher{}
	ctx := context.Background()
	uow, txCtx := passthroughUow(ctx)
	repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
	repo.On("Save", txCtx, project).Return(nil)

	handler := NewResetDatesHandler(repo, uow, publisher)
	err := handler.Handle(ctx, ResetDatesCommand{ProjectID: project.ID(), UserID: userID})

	require.NoError(t, err)
	assert.False(t, project.DatesOverridden())
	require.NotNil(t, project.StartDate())
	assert.True(t, project.StartDate().Equal(*dateOn(2026, time.July, 1)))
	require.NotNil(t, project.EndDate())
	assert.True(t, project.EndDate().Equal(*dateOn(2026, time.August, 15)))
	assert.Equal(t, []string{domain.EventDatesChanged}, publisher.routingKeys())
}

// ============ RecalculateHealthHandler ============

func TestRecalculateHealthHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	t.Run("recomputes dates, health and caches the snapshot", func(t *testing.T) {
		project := newActiveProject(t, userID)
		m := project.AddMilestone("Build", dateOn(2026, time.August, 1))
		m.SetEndDate(dateOn(2026, time.August, 30))
		m.SetCompletion(50)
		project.ClearDomainEvents()

		repo := new(mockProjectRepo)
		publisher := &capturingPublisher{}
		cache := new(mockHealthCache)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)
		cache.On("Set", ctx, userID, project.ID(), mock.AnythingOfType("domain.Health")).Return(nil)

		handler := NewRecalculateHealthHandler(repo, uow, publisher, cache)
		result, err := handler.Handle(ctx, RecalculateHealthCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Today:     today,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 50, result.Health.Percentage)

		// Dates were adopted from the milestones.
		require.NotNil(t, project.StartDate())
		assert.True(t, project.StartDate().Equal(*dateOn(2026, time.August, 1)))
		require.NotNil(t, project.EndDate())
		assert.True(t, project.EndDate().Equal(*dateOn(2026, time.August, 30)))

		// Syncing adopted dates must not emit a dates-changed event, or the
		// worker would loop on its own recalculations.
		assert.Equal(t, []string{domain.EventHealthRecalculated}, publisher.routingKeys())
		cache.AssertExpectations(t)
	})

	t.Run("cache failure does not fail the command", func(t *testing.T) {
		project := newActiveProject(t, userID)
		project.ClearDomainEvents()

		repo := new(mockProjectRepo)
		cache := new(mockHealthCache)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		repo.On("FindByID", txCtx, project.ID(), userID).Return(project, nil)
		repo.On("Save", txCtx, project).Return(nil)
		cache.On("Set", ctx, userID, project.ID(), mock.AnythingOfType("domain.Health")).
			Return(errors.New("redis down"))

		handler := NewRecalculateHealthHandler(repo, uow, &capturingPublisher{}, cache)
		result, err := handler.Handle(ctx, RecalculateHealthCommand{
			ProjectID: project.ID(),
			UserID:    userID,
			Today:     today,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(mockProjectRepo)
		ctx := context.Background()
		uow, txCtx := passthroughUow(ctx)
		uow.On("Rollback", txCtx).Return(nil)
		projectID := uuid.New()
		repo.On("FindByID", txCtx, projectID, userID).Return(nil, domain.ErrProjectNotFound)

		handler := NewRecalculateHealthHandler(repo, uow, &capturingPublisher{}, nil)
		_, err := handler.Handle(ctx, RecalculateHealthCommand{
			ProjectID: projectID,
			UserID:    userID,
			Today:     today,
		})

		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}
