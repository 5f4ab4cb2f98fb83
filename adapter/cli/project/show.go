package project

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project details",
	Long: `Show detailed information about a project including its derived
timeline, health, and milestones.

Examples:
  pulse project show abc123
  pulse project show 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetProjectHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		query := queries.GetProjectQuery{
			ProjectID: projectID,
			UserID:    app.CurrentUserID,
		}

		ctx := cmd.Context()
		project, err := app.GetProjectHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}

		// Display project details
		fmt.Printf("Project: %s\n", project.Name)
		fmt.Printf("ID: %s\n", project.ID)
		fmt.Printf("Status: %s %s\n", statusToIcon(project.Status), project.Status)
		fmt.Printf("Health: %s %s (%d%%)\n",
			colorToIcon(project.Health.Color), project.Health.Color, project.Health.Percentage)
		fmt.Printf("  %s\n", project.Health.Reasoning)

		if project.Description != "" {
			fmt.Printf("Description: %s\n", project.Description)
		}

		if project.StartDate != nil {
			fmt.Printf("Start Date: %s\n", project.StartDate.Format("2006-01-02"))
		}
		if project.EndDate != nil {
			fmt.Printf("End Date: %s\n", project.EndDate.Format("2006-01-02"))
		}
		if project.DatesOverridden {
			fmt.Println("Dates: manually set (milestone sync paused)")
		}

		fmt.Printf("Completion: %d%%\n", project.Completion)

		if project.Duration.TotalDays != nil {
			fmt.Printf("\nTimeline:\n")
			fmt.Printf("  Total days: %d (%d working)\n",
				*project.Duration.TotalDays, deref(project.Duration.WorkingDays))
			fmt.Printf("  Days remaining: %d (%d working)\n",
				deref(project.Duration.TotalDaysRemaining), deref(project.Duration.WorkingDaysRemaining))
			if project.TimeRemaining.Percentage != nil {
				fmt.Printf("  Time remaining: %d%% (%s)\n",
					*project.TimeRemaining.Percentage, project.TimeRemaining.Bucket)
			}
		}

		fmt.Printf("Created: %s\n", project.CreatedAt.Format("2006-01-02 15:04"))

		// Display milestones
		if len(project.Milestones) > 0 {
			fmt.Printf("\nMilestones (%d):\n", len(project.Milestones))
			for _, m := range project.Milestones {
				dateStr := "unscheduled"
				if m.Date != nil {
					dateStr = m.Date.Format("2006-01-02")
				}
				fmt.Printf("  %s %s - %s (%d%%, weight %d)\n",
					milestoneStatusToIcon(m.Status), m.Name, dateStr, m.Completion, m.Weight)
				fmt.Printf("     ID: %s\n", m.ID.String()[:8])
			}
		}

		return nil
	},
}

func milestoneStatusToIcon(status string) string {
	switch status {
	case "completed":
		return "✅"
	case "at_risk":
		return "🟡"
	case "high_risk":
		return "🔴"
	default:
		return "📋"
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
