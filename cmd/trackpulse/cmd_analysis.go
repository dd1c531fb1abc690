package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	filterProject  string
	filterAssignee string
)

var delaysCmd = &cobra.Command{
	Use:   "delays",
	Short: "Analyze delayed activities",
	Long: `Retrieves activities marked delayed and generates an analysis of the
delays, their reasons, and corrective actions.

Examples:
  trackpulse delays
  trackpulse delays --project "Website Redesign"
  trackpulse delays --assignee Ana`,
	RunE: runDelays,
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Analyze pending tasks",
	Long: `Retrieves activities that carry open tasks and generates a prioritized
work plan.

Examples:
  trackpulse tasks
  trackpulse tasks --project "Website Redesign"`,
	RunE: runTasks,
}

var summaryCmd = &cobra.Command{
	Use:   "summary [project]",
	Short: "Summarize one project",
	Long: `Aggregates every indexed activity of one project into status counts,
average progress, team and open items, and generates an executive
analysis on top.

Example:
  trackpulse summary "Website Redesign"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	for _, c := range []*cobra.Command{delaysCmd, tasksCmd} {
		c.Flags().StringVar(&filterProject, "project", "", "Restrict to one project")
		c.Flags().StringVar(&filterAssignee, "assignee", "", "Restrict to one assignee")
	}
}

func runDelays(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.close()

	res, err := svc.answerer.AnalyzeDelays(ctx, filterProject, filterAssignee)
	if err != nil {
		return err
	}

	if len(res.Delayed) == 0 {
		fmt.Println("No delayed activities found in the index.")
		return nil
	}
	fmt.Printf("Delayed activities: %d\n\n", len(res.Delayed))
	fmt.Println(res.Analysis)
	return nil
}

func runTasks(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.close()

	res, err := svc.answerer.AnalyzePendingTasks(ctx, filterProject, filterAssignee)
	if err != nil {
		return err
	}

	if len(res.Projects) == 0 {
		fmt.Println("No pending tasks found in the index.")
		return nil
	}
	fmt.Printf("Activities with open tasks: %d\n\n", len(res.Projects))
	fmt.Println(res.Analysis)
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.close()

	res, err := svc.answerer.SummarizeProject(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	m := res.Metrics
	fmt.Printf("Project: %s\n", res.ProjectName)
	fmt.Printf("  Activities:       %d (on track %d, at risk %d, delayed %d)\n",
		m.TotalActivities, m.OnTrack, m.AtRisk, m.Delayed)
	fmt.Printf("  Average progress: %.1f%%\n", m.AverageProgress)
	fmt.Printf("  Completion rate:  %.1f%%\n", m.CompletionRate)
	if len(m.Assignees) > 0 {
		fmt.Printf("  Team:             %s\n", strings.Join(m.Assignees, ", "))
	}
	fmt.Printf("  Pending tasks:    %d\n", len(m.PendingTasks))
	fmt.Printf("  Delay reasons:    %d\n", len(m.DelayReasons))
	fmt.Println()
	fmt.Println(res.Analysis)
	return nil
}
