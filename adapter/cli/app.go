package cli

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Project Command Handlers
	CreateProjectHandler       *commands.CreateProjectHandler
	UpdateProjectHandler       *commands.UpdateProjectHandler
	DeleteProjectHandler       *commands.DeleteProjectHandler
	ChangeProjectStatusHandler *commands.ChangeProjectStatusHandler

	// Milestone Command Handlers
	AddMilestoneHandler    *commands.AddMilestoneHandler
	UpdateMilestoneHandler *commands.UpdateMilestoneHandler
	DeleteMilestoneHandler *commands.DeleteMilestoneHandler

	// Health Command Handlers
	SetManualHealthHandler    *commands.SetManualHealthHandler
	UseAutomaticHealthHandler *commands.UseAutomaticHealthHandler
	RecalculateHealthHandler  *commands.RecalculateHealthHandler

	// Date Override Command Handlers
	OverrideDatesHandler *commands.OverrideDatesHandler
	ResetDatesHandler    *commands.ResetDatesHandler

	// Query Handlers
	GetProjectHandler       *queries.GetProjectHandler
	ListProjectsHandler     *queries.ListProjectsHandler
	GetHealthSummaryHandler *queries.GetHealthSummaryHandler

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createProjectHandler *commands.CreateProjectHandler,
	updateProjectHandler *commands.UpdateProjectHandler,
	deleteProjectHandler *commands.DeleteProjectHandler,
	changeProjectStatusHandler *commands.ChangeProjectStatusHandler,
	addMilestoneHandler *commands.AddMilestoneHandler,
	updateMilestoneHandler *commands.UpdateMilestoneHandler,
	deleteMilestoneHandler *commands.DeleteMilestoneHandler,
	setManualHealthHandler *commands.SetManualHealthHandler,
	useAutomaticHealthHandler *commands.UseAutomaticHealthHandler,
	recalculateHealthHandler *commands.RecalculateHealthHandler,
	overrideDatesHandler *commands.OverrideDatesHandler,
	resetDatesHandler *commands.ResetDatesHandler,
	getProjectHandler *queries.GetProjectHandler,
	listProjectsHandler *queries.ListProjectsHandler,
	getHealthSummaryHandler *queries.GetHealthSummaryHandler,
) *App {
	return &App{
		CreateProjectHandler:       createProjectHandler,
		UpdateProjectHandler:       updateProjectHandler,
		DeleteProjectHandler:       deleteProjectHandler,
		ChangeProjectStatusHandler: changeProjectStatusHandler,
		AddMilestoneHandler:        addMilestoneHandler,
		UpdateMilestoneHandler:     updateMilestoneHandler,
		DeleteMilestoneHandler:     deleteMilestoneHandler,
		SetManualHealthHandler:     setManualHealthHandler,
		UseAutomaticHealthHandler:  useAutomaticHealthHandler,
		RecalculateHealthHandler:   recalculateHealthHandler,
		OverrideDatesHandler:       overrideDatesHandler,
		ResetDatesHandler:          resetDatesHandler,
		GetProjectHandler:          getProjectHandler,
		ListProjectsHandler:        listProjectsHandler,
		GetHealthSummaryHandler:    getHealthSummaryHandler,
		CurrentUserID:              uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
