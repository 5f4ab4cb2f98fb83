package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/domain"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage project milestones",
	Long: `Add, update, complete, and delete milestones within a project.
Milestone dates drive the project timeline; completion and weight drive
the aggregate progress.`,
}

var (
	milestoneName         string
	milestoneDescription  string
	milestoneDate         string
	milestoneEndDate      string
	milestoneWeight       int
	milestoneCompletion   int
	milestoneStatus       string
	milestoneClearDate    bool
	milestoneClearEndDate bool
)

var addMilestoneCmd = &cobra.Command{
	Use:   "add [project-id] [name]",
	Short: "Add a milestone to a project",
	Long: `Add a new milestone to a project. The date is optional; undated
milestones count towards completion but not towards the timeline.

Examples:
  pulse project milestone add abc123 "Alpha Release" --date 2026-03-15
  pulse project milestone add abc123 "Beta Phase" --date 2026-04-01 --end 2026-04-30 --weight 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddMilestoneHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		addCmd := commands.AddMilestoneCommand{
			ProjectID:   projectID,
			UserID:      app.CurrentUserID,
			Name:        args[1],
			Description: milestoneDescription,
		}

		if milestoneDate != "" {
			parsed, err := time.Parse("2006-01-02", milestoneDate)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			addCmd.Date = &parsed
		}
		if milestoneEndDate != "" {
			parsed, err := time.Parse("2006-01-02", milestoneEndDate)
			if err != nil {
				return fmt.Errorf("invalid end date format (use YYYY-MM-DD): %w", err)
			}
			addCmd.EndDate = &parsed
		}
		if cmd.Flags().Changed("weight") {
			addCmd.Weight = &milestoneWeight
		}
		if cmd.Flags().Changed("completion") {
			addCmd.Completion = &milestoneCompletion
		}

		ctx := cmd.Context()
		result, err := app.AddMilestoneHandler.Handle(ctx, addCmd)
		if err != nil {
			return fmt.Errorf("failed to add milestone: %w", err)
		}

		fmt.Printf("Milestone added: %s\n", result.MilestoneID)
		fmt.Printf("  name: %s\n", args[1])
		if milestoneDate != "" {
			fmt.Printf("  date: %s\n", milestoneDate)
		}

		return nil
	},
}

var updateMilestoneCmd = &cobra.Command{
	Use:   "update [project-id] [milestone-id]",
	Short: "Update a milestone",
	Long: `Update milestone properties. Only the provided flags change.

Examples:
  pulse project milestone update abc123 def456 --name "New Name"
  pulse project milestone update abc123 def456 --completion 60
  pulse project milestone update abc123 def456 --clear-date`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateMilestoneHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		milestoneID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid milestone ID: %w", err)
		}

		updateCmd := commands.UpdateMilestoneCommand{
			MilestoneID:  milestoneID,
			ProjectID:    projectID,
			UserID:       app.CurrentUserID,
			ClearDate:    milestoneClearDate,
			ClearEndDate: milestoneClearEndDate,
		}

		if milestoneName != "" {
			updateCmd.Name = &milestoneName
		}
		if milestoneDescription != "" {
			updateCmd.Description = &milestoneDescription
		}
		if milestoneDate != "" {
			parsed, err := time.Parse("2006-01-02", milestoneDate)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			updateCmd.Date = &parsed
		}
		if milestoneEndDate != "" {
			parsed, err := time.Parse("2006-01-02", milestoneEndDate)
			if err != nil {
				return fmt.Errorf("invalid end date format (use YYYY-MM-DD): %w", err)
			}
			updateCmd.EndDate = &parsed
		}
		if cmd.Flags().Changed("weight") {
			updateCmd.Weight = &milestoneWeight
		}
		if cmd.Flags().Changed("completion") {
			updateCmd.Completion = &milestoneCompletion
		}
		if milestoneStatus != "" {
			status, err := domain.ParseMilestoneStatus(milestoneStatus)
			if err != nil {
				return fmt.Errorf("invalid milestone status %q: %w", milestoneStatus, err)
			}
			updateCmd.Status = &status
		}

		ctx := cmd.Context()
		if err := app.UpdateMilestoneHandler.Handle(ctx, updateCmd); err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}

		fmt.Println("Milestone updated successfully.")
		return nil
	},
}

var completeMilestoneCmd = &cobra.Command{
	Use:   "complete [project-id] [milestone-id]",
	Short: "Complete a milestone",
	Long: `Mark a milestone as completed with 100% completion.

Examples:
  pulse project milestone complete abc123 def456`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateMilestoneHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		milestoneID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid milestone ID: %w", err)
		}

		completeCmd := commands.UpdateMilestoneCommand{
			MilestoneID: milestoneID,
			ProjectID:   projectID,
			UserID:      app.CurrentUserID,
			Complete:    true,
		}

		ctx := cmd.Context()
		if err := app.UpdateMilestoneHandler.Handle(ctx, completeCmd); err != nil {
			return fmt.Errorf("failed to complete milestone: %w", err)
		}

		fmt.Println("Milestone completed.")
		return nil
	},
}

var deleteMilestoneCmd = &cobra.Command{
	Use:   "delete [project-id] [milestone-id]",
	Short: "Delete a milestone",
	Long: `Delete a milestone from a project. The timeline and health are
recomputed without it.

Examples:
  pulse project milestone delete abc123 def456`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteMilestoneHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		milestoneID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid milestone ID: %w", err)
		}

		deleteCmd := commands.DeleteMilestoneCommand{
			MilestoneID: milestoneID,
			ProjectID:   projectID,
			UserID:      app.CurrentUserID,
		}

		ctx := cmd.Context()
		if err := app.DeleteMilestoneHandler.Handle(ctx, deleteCmd); err != nil {
			return fmt.Errorf("failed to delete milestone: %w", err)
		}

		fmt.Println("Milestone deleted successfully.")
		return nil
	},
}

func init() {
	// Add milestone command
	addMilestoneCmd.Flags().StringVarP(&milestoneDescription, "description", "d", "", "milestone description")
	addMilestoneCmd.Flags().StringVar(&milestoneDate, "date", "", "milestone date (YYYY-MM-DD)")
	addMilestoneCmd.Flags().StringVar(&milestoneEndDate, "end", "", "end date for milestones spanning a range (YYYY-MM-DD)")
	addMilestoneCmd.Flags().IntVar(&milestoneWeight, "weight", 3, "importance weight (1-5)")
	addMilestoneCmd.Flags().IntVar(&milestoneCompletion, "completion", 0, "initial completion percentage (0-100)")

	// Update milestone command
	updateMilestoneCmd.Flags().StringVar(&milestoneName, "name", "", "new milestone name")
	updateMilestoneCmd.Flags().StringVarP(&milestoneDescription, "description", "d", "", "new milestone description")
	updateMilestoneCmd.Flags().StringVar(&milestoneDate, "date", "", "new milestone date (YYYY-MM-DD)")
	updateMilestoneCmd.Flags().StringVar(&milestoneEndDate, "end", "", "new end date (YYYY-MM-DD)")
	updateMilestoneCmd.Flags().IntVar(&milestoneWeight, "weight", 3, "new importance weight (1-5)")
	updateMilestoneCmd.Flags().IntVar(&milestoneCompletion, "completion", 0, "new completion percentage (0-100)")
	updateMilestoneCmd.Flags().StringVar(&milestoneStatus, "status", "", "new status (on_track, at_risk, high_risk, completed)")
	updateMilestoneCmd.Flags().BoolVar(&milestoneClearDate, "clear-date", false, "remove the milestone date")
	updateMilestoneCmd.Flags().BoolVar(&milestoneClearEndDate, "clear-end", false, "remove the end date")

	// Add subcommands
	milestoneCmd.AddCommand(addMilestoneCmd)
	milestoneCmd.AddCommand(updateMilestoneCmd)
	milestoneCmd.AddCommand(completeMilestoneCmd)
	milestoneCmd.AddCommand(deleteMilestoneCmd)
}
