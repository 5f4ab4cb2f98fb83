package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/queries"
)

var (
	listStatus string
	listActive bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List all projects or filter by status.

Examples:
  pulse project list
  pulse project list --active
  pulse project list --status on_hold`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListProjectsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListProjectsQuery{
			UserID:     app.CurrentUserID,
			Status:     listStatus,
			ActiveOnly: listActive,
		}

		ctx := cmd.Context()
		projects, err := app.ListProjectsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("Found %d project(s):\n\n", len(projects))
		for _, p := range projects {
			statusIcon := statusToIcon(p.Status)
			healthIcon := colorToIcon(p.Health.Color)

			fmt.Printf("%s %s [%s] %s\n", statusIcon, p.Name, p.Status, healthIcon)
			fmt.Printf("   ID: %s\n", p.ID.String()[:8])

			if p.Completion > 0 {
				fmt.Printf("   Completion: %d%%\n", p.Completion)
			}
			if p.MilestoneCount > 0 {
				fmt.Printf("   Milestones: %d\n", p.MilestoneCount)
			}
			if p.EndDate != nil {
				endStr := p.EndDate.Format("2006-01-02")
				if p.TimeBucket == "overdue" {
					fmt.Printf("   Ends: %s (OVERDUE)\n", endStr)
				} else {
					fmt.Printf("   Ends: %s\n", endStr)
				}
			}
			if p.DatesOverridden {
				fmt.Printf("   Dates: manually set\n")
			}
			fmt.Println()
		}

		return nil
	},
}

func statusToIcon(status string) string {
	switch status {
	case "draft":
		return "📋"
	case "active":
		return "🚀"
	case "on_hold":
		return "⏸️"
	case "completed":
		return "✅"
	case "cancelled":
		return "🗑️"
	default:
		return "📁"
	}
}

func colorToIcon(color string) string {
	switch color {
	case "green":
		return "🟢"
	case "yellow":
		return "🟡"
	case "red":
		return "🔴"
	default:
		return "⚪"
	}
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (draft, active, on_hold, completed, cancelled)")
	listCmd.Flags().BoolVar(&listActive, "active", false, "show only non-terminal projects")
}
