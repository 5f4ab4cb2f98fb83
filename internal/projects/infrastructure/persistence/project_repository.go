package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
)

// ProjectRepository persists projects and milestones through the shared
// database abstraction. Queries use ? placeholders and are rebound per
// dialect, so the same repository serves SQLite and PostgreSQL.
type ProjectRepository struct {
	conn database.Connection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(conn database.Connection) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

func (r *ProjectRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *ProjectRepository) rebind(query string) string {
	return database.Rebind(r.conn.Driver(), query)
}

const projectColumns = `id, user_id, name, description, status, calculation_type,
	manual_color, manual_percentage, start_date, end_date, dates_overridden,
	health_color, health_percentage, health_reasoning, created_at, updated_at`

const milestoneColumns = `id, project_id, name, description, date, end_date,
	completion, weight, status, sort_order, created_at, updated_at`

// Save persists the project row, upserts its loaded milestones and removes
// milestone rows that are no longer part of the aggregate.
func (r *ProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	exec := r.executor(ctx)

	var manualColor any
	if c := project.ManualColor(); c != nil {
		manualColor = c.String()
	}
	var manualPercentage any
	if p := project.ManualPercentage(); p != nil {
		manualPercentage = *p
	}
	var healthColor, healthReasoning, healthPercentage any
	if h := project.Health(); h != nil {
		healthColor = h.Color.String()
		healthPercentage = h.Percentage
		healthReasoning = h.Reasoning
	}

	query := r.rebind(`INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			status = excluded.status,
			calculation_type = excluded.calculation_type,
			manual_color = excluded.manual_color,
			manual_percentage = excluded.manual_percentage,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			dates_overridden = excluded.dates_overridden,
			health_color = excluded.health_color,
			health_percentage = excluded.health_percentage,
			health_reasoning = excluded.health_reasoning,
			updated_at = excluded.updated_at`)

	_, err := exec.Exec(ctx, query,
		project.ID().String(),
		project.UserID().String(),
		project.Name(),
		project.Description(),
		project.Status().String(),
		project.CalculationType().String(),
		manualColor,
		manualPercentage,
		encodeDate(project.StartDate()),
		encodeDate(project.EndDate()),
		encodeBool(project.DatesOverridden()),
		healthColor,
		healthPercentage,
		healthReasoning,
		encodeTime(project.CreatedAt()),
		encodeTime(project.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	keep := make([]string, 0, len(project.Milestones()))
	for _, milestone := range project.Milestones() {
		if err := r.SaveMilestone(ctx, milestone); err != nil {
			return err
		}
		keep = append(keep, milestone.ID().String())
	}

	return r.pruneMilestones(ctx, project.ID(), keep)
}

// pruneMilestones removes milestone rows that are no longer in the aggregate.
func (r *ProjectRepository) pruneMilestones(ctx context.Context, projectID uuid.UUID, keep []string) error {
	exec := r.executor(ctx)

	if len(keep) == 0 {
		query := r.rebind(`DELETE FROM milestones WHERE project_id = ?`)
		if _, err := exec.Exec(ctx, query, projectID.String()); err != nil {
			return fmt.Errorf("failed to prune milestones: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ")
	query := r.rebind(`DELETE FROM milestones WHERE project_id = ? AND id NOT IN (` + placeholders + `)`)

	args := make([]any, 0, len(keep)+1)
	args = append(args, projectID.String())
	for _, id := range keep {
		args = append(args, id)
	}

	if _, err := exec.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to prune milestones: %w", err)
	}
	return nil
}

// FindByID finds a project by ID for a specific user, with milestones loaded.
func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Project, error) {
	exec := r.executor(ctx)

	query := r.rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`)
	row := exec.QueryRow(ctx, query, id.String(), userID.String())

	project, err := r.scanProject(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	milestones, err := r.FindMilestonesByProject(ctx, project.ID())
	if err != nil {
		return nil, err
	}
	return withMilestones(project, milestones), nil
}

// FindByUser finds all projects for a user, newest first.
func (r *ProjectRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	query := r.rebind(`SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? ORDER BY created_at DESC`)
	return r.queryProjects(ctx, query, userID.String())
}

// FindByStatus finds projects by lifecycle status for a user.
func (r *ProjectRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status domain.Status) ([]*domain.Project, error) {
	query := r.rebind(`SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND status = ? ORDER BY created_at DESC`)
	return r.queryProjects(ctx, query, userID.String(), status.String())
}

// FindActive finds all non-terminal projects for a user.
func (r *ProjectRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	query := r.rebind(`SELECT ` + projectColumns + ` FROM projects
		WHERE user_id = ? AND status NOT IN ('completed', 'cancelled')
		ORDER BY created_at DESC`)
	return r.queryProjects(ctx, query, userID.String())
}

// Delete removes a project. Milestones go with it.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	exec := r.executor(ctx)

	// Explicit milestone delete in case the backend runs without
	// foreign key cascades enabled.
	query := r.rebind(`DELETE FROM milestones WHERE project_id = ?`)
	if _, err := exec.Exec(ctx, query, id.String()); err != nil {
		return fmt.Errorf("failed to delete milestones: %w", err)
	}

	query = r.rebind(`DELETE FROM projects WHERE id = ? AND user_id = ?`)
	result, err := exec.Exec(ctx, query, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// SaveMilestone persists a milestone (create or update).
func (r *ProjectRepository) SaveMilestone(ctx context.Context, milestone *domain.Milestone) error {
	exec := r.executor(ctx)

	query := r.rebind(`INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			date = excluded.date,
			end_date = excluded.end_date,
			completion = excluded.completion,
			weight = excluded.weight,
			status = excluded.status,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at`)

	_, err := exec.Exec(ctx, query,
		milestone.ID().String(),
		milestone.ProjectID().String(),
		milestone.Name(),
		milestone.Description(),
		encodeDate(milestone.Date()),
		encodeDate(milestone.EndDate()),
		milestone.Completion(),
		milestone.Weight(),
		milestone.Status().String(),
		milestone.Order(),
		encodeTime(milestone.CreatedAt()),
		encodeTime(milestone.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

// FindMilestonesByProject finds all milestones for a project in display order.
func (r *ProjectRepository) FindMilestonesByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	exec := r.executor(ctx)

	query := r.rebind(`SELECT ` + milestoneColumns + ` FROM milestones
		WHERE project_id = ? ORDER BY sort_order, created_at`)
	rows, err := exec.Query(ctx, query, projectID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		milestone, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, milestone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read milestones: %w", err)
	}
	return milestones, nil
}

// DeleteMilestone removes a milestone.
func (r *ProjectRepository) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	exec := r.executor(ctx)

	query := r.rebind(`DELETE FROM milestones WHERE id = ?`)
	result, err := exec.Exec(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	exec := r.executor(ctx)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	for i, project := range projects {
		milestones, err := r.FindMilestonesByProject(ctx, project.ID())
		if err != nil {
			return nil, err
		}
		projects[i] = withMilestones(project, milestones)
	}
	return projects, nil
}

// scanProject maps one row to a project aggregate without milestones.
func (r *ProjectRepository) scanProject(row database.Row) (*domain.Project, error) {
	var (
		idStr, userIDStr, name, description string
		statusStr, calcTypeStr              string
		manualColor, healthColor            sql.NullString
		manualPercentage, healthPercentage  sql.NullInt64
		startDate, endDate, healthReasoning sql.NullString
		datesOverridden                     int64
		createdAtStr, updatedAtStr          string
	)

	err := row.Scan(
		&idStr, &userIDStr, &name, &description, &statusStr, &calcTypeStr,
		&manualColor, &manualPercentage, &startDate, &endDate, &datesOverridden,
		&healthColor, &healthPercentage, &healthReasoning,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid project id: %w", err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	status, err := domain.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	calcType, err := domain.ParseCalculationType(calcTypeStr)
	if err != nil {
		return nil, err
	}

	var colorPtr *domain.Color
	if manualColor.Valid {
		color, err := domain.ParseColor(manualColor.String)
		if err != nil {
			return nil, err
		}
		colorPtr = &color
	}
	var pctPtr *int
	if manualPercentage.Valid {
		pct := int(manualPercentage.Int64)
		pctPtr = &pct
	}

	var health *domain.Health
	if healthColor.Valid {
		color, err := domain.ParseColor(healthColor.String)
		if err != nil {
			return nil, err
		}
		health = &domain.Health{
			Color:      color,
			Percentage: int(healthPercentage.Int64),
			Reasoning:  healthReasoning.String,
		}
	}

	start, err := decodeDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := decodeDate(endDate)
	if err != nil {
		return nil, err
	}
	createdAt, err := decodeTime(createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime(updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateProject(
		id, userID,
		name, description,
		status, calcType,
		colorPtr, pctPtr,
		start, end,
		datesOverridden != 0,
		health,
		nil,
		createdAt, updatedAt,
	), nil
}

func scanMilestone(row database.Row) (*domain.Milestone, error) {
	var (
		idStr, projectIDStr, name, description string
		date, endDate                          sql.NullString
		completion, weight, order              int
		statusStr                              string
		createdAtStr, updatedAtStr             string
	)

	err := row.Scan(
		&idStr, &projectIDStr, &name, &description, &date, &endDate,
		&completion, &weight, &statusStr, &order, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid milestone id: %w", err)
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid project id: %w", err)
	}
	status, err := domain.ParseMilestoneStatus(statusStr)
	if err != nil {
		return nil, err
	}

	d, err := decodeDate(date)
	if err != nil {
		return nil, err
	}
	e, err := decodeDate(endDate)
	if err != nil {
		return nil, err
	}
	createdAt, err := decodeTime(createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime(updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateMilestone(
		id, projectID,
		name, description,
		d, e,
		completion, weight,
		status, order,
		createdAt, updatedAt,
	), nil
}

// withMilestones rebuilds the aggregate with its milestone list attached.
func withMilestones(project *domain.Project, milestones []*domain.Milestone) *domain.Project {
	return domain.RehydrateProject(
		project.ID(), project.UserID(),
		project.Name(), project.Description(),
		project.Status(), project.CalculationType(),
		project.ManualColor(), project.ManualPercentage(),
		project.StartDate(), project.EndDate(),
		project.DatesOverridden(),
		project.Health(),
		milestones,
		project.CreatedAt(), project.UpdatedAt(),
	)
}

func encodeBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func decodeDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", ns.String, err)
	}
	return &t, nil
}
