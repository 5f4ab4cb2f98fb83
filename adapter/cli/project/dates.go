package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Override or reset project dates",
	Long: `Project dates normally follow the milestone timeline. Override pins
them to a fixed pair; reset lets them follow the milestones again.`,
}

var (
	overrideStart string
	overrideEnd   string
)

var overrideDatesCmd = &cobra.Command{
	Use:   "override [project-id]",
	Short: "Pin the project dates manually",
	Long: `Freeze the project's start and end dates at the given pair. The
milestone-derived timeline stops updating them until a reset.

Examples:
  pulse project dates override abc123 --start 2026-01-15 --end 2026-06-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.OverrideDatesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		overrideCmd := commands.OverrideDatesCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		if overrideStart != "" {
			parsed, err := time.Parse("2006-01-02", overrideStart)
			if err != nil {
				return fmt.Errorf("invalid start date format (use YYYY-MM-DD): %w", err)
			}
			overrideCmd.StartDate = &parsed
		}
		if overrideEnd != "" {
			parsed, err := time.Parse("2006-01-02", overrideEnd)
			if err != nil {
				return fmt.Errorf("invalid end date format (use YYYY-MM-DD): %w", err)
			}
			overrideCmd.EndDate = &parsed
		}

		ctx := cmd.Context()
		if err := app.OverrideDatesHandler.Handle(ctx, overrideCmd); err != nil {
			return fmt.Errorf("failed to override dates: %w", err)
		}

		fmt.Println("Project dates pinned. Milestone sync is paused.")
		return nil
	},
}

var resetDatesCmd = &cobra.Command{
	Use:   "reset [project-id]",
	Short: "Let dates follow the milestones again",
	Long: `Release a manual date override. The stored dates are recomputed from
the current milestones immediately.

Examples:
  pulse project dates reset abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ResetDatesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		resetCmd := commands.ResetDatesCommand{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		ctx := cmd.Context()
		if err := app.ResetDatesHandler.Handle(ctx, resetCmd); err != nil {
			return fmt.Errorf("failed to reset dates: %w", err)
		}

		fmt.Println("Project dates follow the milestones again.")
		return nil
	},
}

func init() {
	overrideDatesCmd.Flags().StringVar(&overrideStart, "start", "", "pinned start date (YYYY-MM-DD)")
	overrideDatesCmd.Flags().StringVar(&overrideEnd, "end", "", "pinned end date (YYYY-MM-DD)")

	datesCmd.AddCommand(overrideDatesCmd)
	datesCmd.AddCommand(resetDatesCmd)
}
