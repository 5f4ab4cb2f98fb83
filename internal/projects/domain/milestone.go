package domain

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneStatus represents the delivery confidence of a single milestone.
type MilestoneStatus string

const (
	// MilestoneOnTrack indicates the milestone is progressing as planned.
	MilestoneOnTrack MilestoneStatus = "on_track"
	// MilestoneAtRisk indicates the milestone may slip.
	MilestoneAtRisk MilestoneStatus = "at_risk"
	// MilestoneHighRisk indicates the milestone is likely to slip.
	MilestoneHighRisk MilestoneStatus = "high_risk"
	// MilestoneCompleted indicates the milestone is done.
	MilestoneCompleted MilestoneStatus = "completed"
)

// String returns the string representation of the milestone status.
func (s MilestoneStatus) String() string {
	return string(s)
}

// IsValid returns true if the milestone status is a known value.
func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestoneOnTrack, MilestoneAtRisk, MilestoneHighRisk, MilestoneCompleted:
		return true
	default:
		return false
	}
}

// ParseMilestoneStatus parses a string into a MilestoneStatus.
func ParseMilestoneStatus(s string) (MilestoneStatus, error) {
	status := MilestoneStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidMilestoneStatus
	}
	return status, nil
}

// Milestone weight bounds. Weights outside the range fall back to the default.
const (
	MinWeight     = 1
	MaxWeight     = 5
	DefaultWeight = 3
)

// Milestone represents a significant checkpoint within a project.
// Its dates drive the project timeline; its completion and weight drive
// the aggregate completion percentage.
type Milestone struct {
	id          uuid.UUID
	projectID   uuid.UUID
	name        string
	description string
	date        *time.Time // nil until the caller schedules it
	endDate     *time.Time
	completion  int // 0-100
	weight      int // 1-5
	status      MilestoneStatus
	order       int // Display order within project
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMilestone creates a new milestone. The date may be nil for milestones
// that have not been scheduled yet.
func NewMilestone(projectID uuid.UUID, name string, date *time.Time) *Milestone {
	now := time.Now().UTC()
	return &Milestone{
		id:          uuid.New(),
		projectID:   projectID,
		name:        name,
		description: "",
		date:        cloneTime(date),
		endDate:     nil,
		completion:  0,
		weight:      DefaultWeight,
		status:      MilestoneOnTrack,
		order:       0,
		createdAt:   now,
		updatedAt:   now,
	}
}

// Getters
func (m *Milestone) ID() uuid.UUID           { return m.id }
func (m *Milestone) ProjectID() uuid.UUID    { return m.projectID }
func (m *Milestone) Name() string            { return m.name }
func (m *Milestone) Description() string     { return m.description }
func (m *Milestone) Date() *time.Time        { return m.date }
func (m *Milestone) EndDate() *time.Time     { return m.endDate }
func (m *Milestone) Completion() int         { return m.completion }
func (m *Milestone) Weight() int             { return m.weight }
func (m *Milestone) Status() MilestoneStatus { return m.status }
func (m *Milestone) Order() int              { return m.order }
func (m *Milestone) CreatedAt() time.Time    { return m.createdAt }
func (m *Milestone) UpdatedAt() time.Time    { return m.updatedAt }

// SetName updates the milestone name.
func (m *Milestone) SetName(name string) {
	m.name = name
	m.touch()
}

// SetDescription updates the milestone description.
func (m *Milestone) SetDescription(description string) {
	m.description = description
	m.touch()
}

// SetDate updates the milestone date. A nil date removes the milestone from
// all timeline calculations without affecting completion weighting.
func (m *Milestone) SetDate(date *time.Time) {
	m.date = cloneTime(date)
	m.touch()
}

// SetEndDate updates the optional end date of a milestone that spans a range.
func (m *Milestone) SetEndDate(endDate *time.Time) {
	m.endDate = cloneTime(endDate)
	m.touch()
}

// SetCompletion updates the completion percentage, clamped to 0-100.
func (m *Milestone) SetCompletion(completion int) {
	m.completion = clampCompletion(completion)
	m.touch()
}

// SetWeight updates the importance weight. Values outside 1-5 fall back to
// the default weight rather than being rejected.
func (m *Milestone) SetWeight(weight int) {
	if weight < MinWeight || weight > MaxWeight {
		weight = DefaultWeight
	}
	m.weight = weight
	m.touch()
}

// SetOrder updates the milestone display order.
func (m *Milestone) SetOrder(order int) {
	m.order = order
	m.touch()
}

// UpdateStatus sets the milestone delivery status.
func (m *Milestone) UpdateStatus(status MilestoneStatus) error {
	if !status.IsValid() {
		return ErrInvalidMilestoneStatus
	}
	m.status = status
	m.touch()
	return nil
}

// Complete marks the milestone as completed and its completion as 100%.
func (m *Milestone) Complete() {
	m.status = MilestoneCompleted
	m.completion = 100
	m.touch()
}

// IsCompleted returns true if the milestone is done.
func (m *Milestone) IsCompleted() bool {
	return m.status == MilestoneCompleted
}

// EffectiveEnd returns the end date when present, otherwise the date.
// Returns nil for unscheduled milestones.
func (m *Milestone) EffectiveEnd() *time.Time {
	if m.endDate != nil {
		return m.endDate
	}
	return m.date
}

// NormalizedWeight returns the weight, substituting the default for
// out-of-range values that may have entered through persistence.
func (m *Milestone) NormalizedWeight() int {
	if m.weight < MinWeight || m.weight > MaxWeight {
		return DefaultWeight
	}
	return m.weight
}

func (m *Milestone) touch() {
	m.updatedAt = time.Now().UTC()
}

// RehydrateMilestone recreates a milestone from persisted data.
func RehydrateMilestone(
	id, projectID uuid.UUID,
	name, description string,
	date, endDate *time.Time,
	completion, weight int,
	status MilestoneStatus,
	order int,
	createdAt, updatedAt time.Time,
) *Milestone {
	return &Milestone{
		id:          id,
		projectID:   projectID,
		name:        name,
		description: description,
		date:        cloneTime(date),
		endDate:     cloneTime(endDate),
		completion:  clampCompletion(completion),
		weight:      weight,
		status:      status,
		order:       order,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func clampCompletion(completion int) int {
	if completion < 0 {
		return 0
	}
	if completion > 100 {
		return 100
	}
	return completion
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
