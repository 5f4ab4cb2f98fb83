package domain

import "errors"

var (
	// ErrProjectNotFound indicates the requested project was not found.
	ErrProjectNotFound = errors.New("project not found")

	// ErrMilestoneNotFound indicates the requested milestone was not found.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrInvalidStatusTransition indicates an invalid lifecycle transition was attempted.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidStatus indicates an unknown lifecycle status value.
	ErrInvalidStatus = errors.New("invalid project status")

	// ErrInvalidMilestoneStatus indicates an unknown milestone status value.
	ErrInvalidMilestoneStatus = errors.New("invalid milestone status")

	// ErrInvalidColor indicates an unknown health color value.
	ErrInvalidColor = errors.New("invalid health color")

	// ErrInvalidCalculationType indicates an unknown health calculation type.
	ErrInvalidCalculationType = errors.New("invalid health calculation type")

	// ErrEmptyName indicates the name cannot be empty.
	ErrEmptyName = errors.New("name cannot be empty")
)
