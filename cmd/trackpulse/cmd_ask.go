package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a free-text question about the indexed projects",
	Long: `Answers a question grounded in the most similar indexed passages.

Example:
  trackpulse ask "how is the website redesign going?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.close()

	ans, err := svc.answerer.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(ans.Text)
	if verbose {
		fmt.Printf("\n(%d grounding passages)\n", ans.Matches)
	}
	return nil
}
