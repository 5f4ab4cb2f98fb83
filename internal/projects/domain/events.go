package domain

import (
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// AggregateTypeProject identifies project events on the bus.
const AggregateTypeProject = "project"

// Routing keys for project domain events. The recompute worker subscribes
// to the change events and refreshes the persisted health snapshot.
const (
	EventMilestonesChanged  = "projects.project.milestones_changed"
	EventDatesChanged       = "projects.project.dates_changed"
	EventHealthRecalculated = "projects.project.health_recalculated"
)

// MilestonesChangedEvent signals that a project's milestone list or the
// fields of an individual milestone changed materially.
type MilestonesChangedEvent struct {
	sharedDomain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewMilestonesChangedEvent creates a MilestonesChangedEvent.
func NewMilestonesChangedEvent(projectID, userID uuid.UUID) *MilestonesChangedEvent {
	return &MilestonesChangedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(projectID, AggregateTypeProject, EventMilestonesChanged),
		UserID:    userID,
	}
}

// DatesChangedEvent signals that a project's dates were overridden or the
// override was released.
type DatesChangedEvent struct {
	sharedDomain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewDatesChangedEvent creates a DatesChangedEvent.
func NewDatesChangedEvent(projectID, userID uuid.UUID) *DatesChangedEvent {
	return &DatesChangedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(projectID, AggregateTypeProject, EventDatesChanged),
		UserID:    userID,
	}
}

// HealthRecalculatedEvent carries a freshly computed health snapshot.
type HealthRecalculatedEvent struct {
	sharedDomain.BaseEvent
	UserID     uuid.UUID `json:"user_id"`
	Color      string    `json:"color"`
	Percentage int       `json:"percentage"`
	Reasoning  string    `json:"reasoning"`
}

// NewHealthRecalculatedEvent creates a HealthRecalculatedEvent.
func NewHealthRecalculatedEvent(projectID, userID uuid.UUID, health Health) *HealthRecalculatedEvent {
	return &HealthRecalculatedEvent{
		BaseEvent:  sharedDomain.NewBaseEvent(projectID, AggregateTypeProject, EventHealthRecalculated),
		UserID:     userID,
		Color:      health.Color.String(),
		Percentage: health.Percentage,
		Reasoning:  health.Reasoning,
	}
}
