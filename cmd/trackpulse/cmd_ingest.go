package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trackpulse/internal/ingest"
	"trackpulse/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a project tracking spreadsheet into the index",
	Long: `Reads a CSV spreadsheet, classifies its columns, extracts one activity
record per row, and indexes a descriptive passage for each. A validation
summary passage is indexed alongside the rows.

Ingestion proceeds even when the sheet scores poorly on column coverage;
the report flags what is missing.

Example:
  trackpulse ingest tracking/projects_q3.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path := args[0]
	logger.Info("Ingesting spreadsheet", zap.String("path", path))

	index, err := openIndex()
	if err != nil {
		return err
	}
	defer index.Close()

	result, err := ingest.New(index).IngestFile(ctx, path)
	if err != nil {
		return err
	}

	printIngestReport(path, result)
	return nil
}

func printIngestReport(path string, result *ingest.Result) {
	report := result.Report

	fmt.Printf("Ingested %s\n", path)
	fmt.Printf("  Rows processed:  %d\n", result.RowsProcessed)
	fmt.Printf("  Passages stored: %d\n", result.Upserted)
	fmt.Printf("  Quality score:   %.1f%% (%d of %d column roles)\n",
		report.DataQualityScore, len(report.RolesFound), types.RoleCount)

	if !report.IsValid {
		fmt.Println("  Structure:       below the usable threshold; results may be incomplete")
	}
	if len(report.Warnings) > 0 {
		fmt.Println("  Warnings:")
		for _, w := range report.Warnings {
			fmt.Printf("    - %s\n", w)
		}
	}
	if len(report.Recommendations) > 0 {
		fmt.Println("  Recommendations:")
		for _, r := range report.Recommendations {
			fmt.Printf("    - %s\n", r)
		}
	}

	if len(report.RolesFound) > 0 {
		names := make([]string, 0, len(report.RolesFound))
		for _, role := range report.RolesFound {
			names = append(names, string(role))
		}
		fmt.Printf("  Roles detected:  %s\n", strings.Join(names, ", "))
	}
}
