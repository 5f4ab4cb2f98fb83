package domain

// Status represents the lifecycle status of a project.
type Status string

const (
	// StatusDraft indicates the project is being planned and has not started.
	StatusDraft Status = "draft"
	// StatusActive indicates the project is in progress.
	StatusActive Status = "active"
	// StatusOnHold indicates the project is temporarily paused.
	StatusOnHold Status = "on_hold"
	// StatusCompleted indicates the project is finished.
	StatusCompleted Status = "completed"
	// StatusCancelled indicates the project was abandoned.
	StatusCancelled Status = "cancelled"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status represents a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo returns true if transitioning to the given status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusActive || target == StatusCancelled
	case StatusActive:
		return target == StatusOnHold || target == StatusCompleted || target == StatusCancelled
	case StatusOnHold:
		return target == StatusActive || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	default:
		return false
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CalculationType selects how a project's health is determined.
type CalculationType string

const (
	// CalculationAutomatic derives health from milestones and the timeline.
	CalculationAutomatic CalculationType = "automatic"
	// CalculationManual uses the caller-supplied color and percentage.
	CalculationManual CalculationType = "manual"
)

// String returns the string representation of the calculation type.
func (c CalculationType) String() string {
	return string(c)
}

// IsValid returns true if the calculation type is a known value.
func (c CalculationType) IsValid() bool {
	return c == CalculationAutomatic || c == CalculationManual
}

// ParseCalculationType parses a string into a CalculationType.
func ParseCalculationType(s string) (CalculationType, error) {
	ct := CalculationType(s)
	if !ct.IsValid() {
		return "", ErrInvalidCalculationType
	}
	return ct, nil
}
