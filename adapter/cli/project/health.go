package project

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/application/queries"
	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show or set project health",
	Long: `Read the traffic-light health of a project, or switch between
automatic calculation and a manually set color.`,
}

var (
	healthFresh      bool
	healthPercentage int
)

var showHealthCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project health",
	Long: `Display the health color, percentage, and the reasoning behind it.

Examples:
  pulse project health show abc123
  pulse project health show abc123 --fresh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetHealthSummaryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		query := queries.GetHealthSummaryQuery{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
			Fresh:     healthFresh,
		}

		ctx := cmd.Context()
		summary, err := app.GetHealthSummaryHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to get project health: %w", err)
		}

		fmt.Printf("Health: %s %s (%d%%)\n",
			colorToIcon(summary.Health.Color), summary.Health.Color, summary.Health.Percentage)
		fmt.Printf("  %s\n", summary.Health.Reasoning)
		if summary.Cached {
			fmt.Println("  (cached)")
		}

		return nil
	},
}

var setHealthCmd = &cobra.Command{
	Use:   "set [project-id] [color]",
	Short: "Set project health manually",
	Long: `Switch the project to manual health mode with a fixed color and
percentage. Automatic calculation stops until "health auto" is run.

Examples:
  pulse project health set abc123 yellow --percentage 55
  pulse project health set abc123 red`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SetManualHealthHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		color, err := domain.ParseColor(args[1])
		if err != nil {
			return fmt.Errorf("invalid color %q (use green, yellow, or red): %w", args[1], err)
		}

		setCmd := commands.SetManualHealthCommand{
			ProjectID:  projectID,
			UserID:     app.CurrentUserID,
			Color:      color,
			Percentage: healthPercentage,
		}

		ctx := cmd.Context()
		if err := app.SetManualHealthHandler.Handle(ctx, setCmd); err != nil {
			return fmt.Errorf("failed to set project health: %w", err)
		}

		fmt.Printf("Health set manually: %s %s (%d%%)\n",
			colorToIcon(color.String()), color, healthPercentage)
		return nil
	},
}

var autoHealthCmd = &cobra.Command{
	Use:   "auto [project-id]",
	Short: "Return to automatic health calculation",
	Long: `Discard a manually set health and derive it from milestones and the
timeline again.

Examples:
  pulse project health auto abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UseAutomaticHealthHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		autoCmd := commands.UseAutomaticHealthCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		ctx := cmd.Context()
		if err := app.UseAutomaticHealthHandler.Handle(ctx, autoCmd); err != nil {
			return fmt.Errorf("failed to switch to automatic health: %w", err)
		}

		fmt.Println("Health is calculated automatically again.")
		return nil
	},
}

func init() {
	showHealthCmd.Flags().BoolVar(&healthFresh, "fresh", false, "bypass the cache and recompute")
	setHealthCmd.Flags().IntVarP(&healthPercentage, "percentage", "p", 0, "health percentage (0-100)")

	healthCmd.AddCommand(showHealthCmd)
	healthCmd.AddCommand(setHealthCmd)
	healthCmd.AddCommand(autoHealthCmd)
}
