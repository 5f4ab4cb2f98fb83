package project

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

var startCmd = &cobra.Command{
	Use:   "start [project-id]",
	Short: "Start a project",
	Long: `Transition a project from draft to active status.

Examples:
  pulse project start abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusChange("start", domain.StatusActive),
}

var holdCmd = &cobra.Command{
	Use:   "hold [project-id]",
	Short: "Put a project on hold",
	Long: `Pause an active project.

Examples:
  pulse project hold abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusChange("hold", domain.StatusOnHold),
}

var resumeCmd = &cobra.Command{
	Use:   "resume [project-id]",
	Short: "Resume a project on hold",
	Long: `Bring a paused project back to active status.

Examples:
  pulse project resume abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusChange("resume", domain.StatusActive),
}

var completeCmd = &cobra.Command{
	Use:   "complete [project-id]",
	Short: "Complete a project",
	Long: `Mark a project as completed.

Examples:
  pulse project complete abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusChange("complete", domain.StatusCompleted),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [project-id]",
	Short: "Cancel a project",
	Long: `Abandon a project. Cancelled projects keep their milestones but
stop being counted as active work.

Examples:
  pulse project cancel abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusChange("cancel", domain.StatusCancelled),
}

var deleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project",
	Long: `Permanently delete a project and all its milestones.

Examples:
  pulse project delete abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteProjectHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		deleteCmd := commands.DeleteProjectCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		ctx := cmd.Context()
		if err := app.DeleteProjectHandler.Handle(ctx, deleteCmd); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		fmt.Println("Project deleted successfully.")
		return nil
	},
}

func runStatusChange(action string, target domain.Status) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ChangeProjectStatusHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		statusCmd := commands.ChangeProjectStatusCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
			Status:    target,
		}

		ctx := cmd.Context()
		if err := app.ChangeProjectStatusHandler.Handle(ctx, statusCmd); err != nil {
			return fmt.Errorf("failed to %s project: %w", action, err)
		}

		fmt.Printf("Project is now %s.\n", target)
		return nil
	}
}
