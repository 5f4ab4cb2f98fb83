package project

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
)

var recalcCmd = &cobra.Command{
	Use:   "recalc [project-id]",
	Short: "Recalculate project dates and health",
	Long: `Recompute the project's derived dates and health snapshot from its
milestones. The worker does this automatically on changes; recalc forces
it inline.

Examples:
  pulse project recalc abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecalculateHealthHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		recalcCmd := commands.RecalculateHealthCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		ctx := cmd.Context()
		result, err := app.RecalculateHealthHandler.Handle(ctx, recalcCmd)
		if err != nil {
			return fmt.Errorf("failed to recalculate health: %w", err)
		}

		fmt.Printf("Health: %s %s (%d%%)\n",
			colorToIcon(result.Health.Color.String()), result.Health.Color, result.Health.Percentage)
		fmt.Printf("  %s\n", result.Health.Reasoning)
		if result.Duration.TotalDays != nil {
			fmt.Printf("Timeline: %d total days, %d remaining\n",
				*result.Duration.TotalDays, deref(result.Duration.TotalDaysRemaining))
		}

		return nil
	},
}
