package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchTopK int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a raw similarity search, no language model involved",
	Long: `Returns the top-k most similar indexed passages with their scores and
key metadata. Useful to inspect what the index would ground an answer on.

Example:
  trackpulse search "delayed backend work" --top-k 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every passage from the index",
	RunE:  runClear,
}

func init() {
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 10, "Number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	index, err := openIndex()
	if err != nil {
		return err
	}
	defer index.Close()

	hits, err := index.SimilaritySearch(ctx, strings.Join(args, " "), searchTopK)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for i, hit := range hits {
		fmt.Printf("%2d. %.4f  %s\n", i+1, hit.Score, hit.ID)
		if project, ok := hit.Metadata["project_name"].(string); ok && project != "" {
			fmt.Printf("    project: %s", project)
			if assignee, ok := hit.Metadata["assignee"].(string); ok && assignee != "" {
				fmt.Printf("  assignee: %s", assignee)
			}
			if status, ok := hit.Metadata["status"].(string); ok && status != "" {
				fmt.Printf("  status: %s", status)
			}
			fmt.Println()
		}
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	index, err := openIndex()
	if err != nil {
		return err
	}
	defer index.Close()

	count, err := index.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("Index is already empty.")
		return nil
	}

	fmt.Printf("Delete all %d indexed passages? [y/N] ", count)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := index.DeleteAll(ctx); err != nil {
		return err
	}
	fmt.Printf("Deleted %d passages.\n", count)
	return nil
}
