package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
)

var createDescription string

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Long: `Create a new project. Projects start in draft status; their timeline
grows out of the milestones you add afterwards.

Examples:
  pulse project create "Website Redesign"
  pulse project create "Q1 Goals" -d "Everything we promised for Q1"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateProjectHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		name := args[0]

		createCmd := commands.CreateProjectCommand{
			UserID:      app.CurrentUserID,
			Name:        name,
			Description: createDescription,
		}

		ctx := cmd.Context()
		result, err := app.CreateProjectHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("Project created: %s\n", result.ProjectID)
		fmt.Printf("  name: %s\n", name)
		if createDescription != "" {
			fmt.Printf("  description: %s\n", createDescription)
		}

		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "project description")
}
