package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/sqlite"
)

func newTestRepository(t *testing.T) (*ProjectRepository, database.Connection) {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "pulse_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, Migrate(ctx, conn))
	return NewProjectRepository(conn), conn
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestProjectRepositorySaveAndFindByID(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Platform migration")
	require.NoError(t, err)
	project.SetDescription("Move everything to the new platform")
	require.NoError(t, project.Start())

	m1 := project.AddMilestone("Kickoff", datePtr(2026, time.January, 5))
	m1.SetCompletion(100)
	m1.Complete()
	m2 := project.AddMilestone("Cutover", datePtr(2026, time.March, 20))
	m2.SetWeight(5)
	m2.SetCompletion(40)

	require.NoError(t, repo.Save(ctx, project))

	found, err := repo.FindByID(ctx, project.ID(), project.UserID())
	require.NoError(t, err)

	assert.Equal(t, project.ID(), found.ID())
	assert.Equal(t, "Platform migration", found.Name())
	assert.Equal(t, "Move everything to the new platform", found.Description())
	assert.Equal(t, domain.StatusActive, found.Status())
	assert.Equal(t, domain.CalculationAutomatic, found.CalculationType())
	assert.False(t, found.DatesOverridden())

	require.Len(t, found.Milestones(), 2)
	first := found.FindMilestone(m1.ID())
	require.NotNil(t, first)
	assert.Equal(t, 100, first.Completion())
	assert.Equal(t, domain.MilestoneCompleted, first.Status())

	second := found.FindMilestone(m2.ID())
	require.NotNil(t, second)
	assert.Equal(t, 5, second.Weight())
	assert.Equal(t, 40, second.Completion())
	require.NotNil(t, second.Date())
	assert.True(t, second.Date().Equal(*datePtr(2026, time.March, 20)))
}

func TestProjectRepositoryFindByIDNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepositoryScopesByUser(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Private roadmap")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, project))

	_, err = repo.FindByID(ctx, project.ID(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepositoryPersistsManualHealthAndDates(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Q3 launch")
	require.NoError(t, err)
	require.NoError(t, project.SetManualHealth(domain.ColorYellow, 55))
	project.OverrideDates(datePtr(2026, time.June, 1), datePtr(2026, time.September, 30))
	project.RecordHealth(domain.Health{Color: domain.ColorYellow, Percentage: 55, Reasoning: "manually set"})

	require.NoError(t, repo.Save(ctx, project))

	found, err := repo.FindByID(ctx, project.ID(), project.UserID())
	require.NoError(t, err)

	assert.Equal(t, domain.CalculationManual, found.CalculationType())
	require.NotNil(t, found.ManualColor())
	assert.Equal(t, domain.ColorYellow, *found.ManualColor())
	require.NotNil(t, found.ManualPercentage())
	assert.Equal(t, 55, *found.ManualPercentage())

	assert.True(t, found.DatesOverridden())
	require.NotNil(t, found.StartDate())
	assert.True(t, found.StartDate().Equal(*datePtr(2026, time.June, 1)))
	require.NotNil(t, found.EndDate())
	assert.True(t, found.EndDate().Equal(*datePtr(2026, time.September, 30)))

	require.NotNil(t, found.Health())
	assert.Equal(t, domain.ColorYellow, found.Health().Color)
	assert.Equal(t, 55, found.Health().Percentage)
	assert.Equal(t, "manually set", found.Health().Reasoning)
}

func TestProjectRepositorySavePrunesRemovedMilestones(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Cleanup")
	require.NoError(t, err)
	keep := project.AddMilestone("Keep", nil)
	remove := project.AddMilestone("Remove", nil)
	require.NoError(t, repo.Save(ctx, project))

	require.True(t, project.RemoveMilestone(remove.ID()))
	require.NoError(t, repo.Save(ctx, project))

	milestones, err := repo.FindMilestonesByProject(ctx, project.ID())
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, keep.ID(), milestones[0].ID())
}

func TestProjectRepositoryFindByUserAndStatus(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	draft, err := domain.NewProject(userID, "Draft idea")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, draft))

	active, err := domain.NewProject(userID, "In flight")
	require.NoError(t, err)
	require.NoError(t, active.Start())
	require.NoError(t, repo.Save(ctx, active))

	done, err := domain.NewProject(userID, "Shipped")
	require.NoError(t, err)
	require.NoError(t, done.Start())
	require.NoError(t, done.Complete())
	require.NoError(t, repo.Save(ctx, done))

	other, err := domain.NewProject(uuid.New(), "Someone else's")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	all, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	activeOnly, err := repo.FindByStatus(ctx, userID, domain.StatusActive)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID(), activeOnly[0].ID())

	open, err := repo.FindActive(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestProjectRepositoryDelete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Ephemeral")
	require.NoError(t, err)
	project.AddMilestone("Only one", nil)
	require.NoError(t, repo.Save(ctx, project))

	require.NoError(t, repo.Delete(ctx, project.ID(), project.UserID()))

	_, err = repo.FindByID(ctx, project.ID(), project.UserID())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	milestones, err := repo.FindMilestonesByProject(ctx, project.ID())
	require.NoError(t, err)
	assert.Empty(t, milestones)

	assert.ErrorIs(t, repo.Delete(ctx, project.ID(), project.UserID()), domain.ErrProjectNotFound)
}

func TestProjectRepositoryDeleteMilestone(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Milestone ops")
	require.NoError(t, err)
	milestone := project.AddMilestone("Temp", nil)
	require.NoError(t, repo.Save(ctx, project))

	require.NoError(t, repo.DeleteMilestone(ctx, milestone.ID()))
	assert.ErrorIs(t, repo.DeleteMilestone(ctx, milestone.ID()), domain.ErrMilestoneNotFound)
}

func TestProjectRepositoryJoinsAmbientTransaction(t *testing.T) {
	repo, conn := newTestRepository(t)
	ctx := context.Background()

	project, err := domain.NewProject(uuid.New(), "Transactional")
	require.NoError(t, err)

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)
	txCtx := database.WithTx(ctx, tx, true)

	require.NoError(t, repo.Save(txCtx, project))
	require.NoError(t, tx.Rollback(ctx))

	_, err = repo.FindByID(ctx, project.ID(), project.UserID())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
