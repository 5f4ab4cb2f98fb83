package project

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
)

var (
	updateName        string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update [project-id]",
	Short: "Update a project",
	Long: `Update project properties. Dates are derived from milestones; use
"pulse project dates" to pin them manually.

Examples:
  pulse project update abc123 --name "New Project Name"
  pulse project update abc123 -d "Refreshed scope"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateProjectHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		updateCmd := commands.UpdateProjectCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		if updateName != "" {
			updateCmd.Name = &updateName
		}
		if updateDescription != "" {
			updateCmd.Description = &updateDescription
		}

		ctx := cmd.Context()
		if err := app.UpdateProjectHandler.Handle(ctx, updateCmd); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		fmt.Println("Project updated successfully.")
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new project name")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new project description")
}
