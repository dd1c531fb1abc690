// Package describe renders an activity record into the single descriptive
// passage handed to the vector index. The rendering is deterministic:
// identical records always produce byte-identical text, which keeps
// re-indexing reproducible and the output testable.
package describe

import (
	"fmt"
	"strconv"
	"strings"

	"trackpulse/internal/types"
)

// boilerplate terminates every passage. It identifies the text as
// project-tracking content, which improves retrieval recall for generic
// queries that name no specific project.
const boilerplate = "Project tracking information. Analysis of progress, delays and task management."

// Text renders a record as one passage. Labeled fields appear in fixed
// order; absent critical fields render as explicit placeholders so their
// absence is itself searchable.
func Text(rec types.ActivityRecord) string {
	var parts []string

	if rec.ProjectName != "" {
		parts = append(parts, "Project: "+rec.ProjectName)
	} else {
		parts = append(parts, "Project: [not specified]")
	}
	if rec.ActivityName != "" {
		parts = append(parts, "Activity: "+rec.ActivityName)
	} else {
		parts = append(parts, "Activity: [not specified]")
	}
	if rec.Assignee != "" {
		parts = append(parts, "Assigned to: "+rec.Assignee)
	} else {
		parts = append(parts, "Assigned to: [unassigned]")
	}

	if rec.ProgressPercentage != nil {
		parts = append(parts, "Progress: "+FormatPercent(*rec.ProgressPercentage)+"%")
		parts = append(parts, "Status: "+string(rec.Status))
		if rec.IsDelayed {
			parts = append(parts, "DELAYED WORK IDENTIFIED")
		}
	} else {
		parts = append(parts, "Progress: [no information]")
		parts = append(parts, "Status: "+string(rec.Status))
	}

	parts = append(parts, "Data quality: "+string(rec.DataQuality))

	if len(rec.Warnings) > 0 {
		parts = append(parts, "Warnings:")
		for _, w := range rec.Warnings {
			parts = append(parts, "- "+w)
		}
	}
	if len(rec.MissingFields) > 0 {
		parts = append(parts, "Missing fields: "+strings.Join(rec.MissingFields, ", "))
	}
	if rec.Notes != "" {
		parts = append(parts, "Notes: "+rec.Notes)
	}
	if len(rec.DelayReasons) > 0 {
		parts = append(parts, "Delay reasons:")
		for _, r := range rec.DelayReasons {
			parts = append(parts, "- "+r)
		}
	}
	if len(rec.PendingTasks) > 0 {
		parts = append(parts, "Pending tasks:")
		for _, task := range rec.PendingTasks {
			parts = append(parts, "- "+task)
		}
	}

	return strings.Join(parts, ". ") + ". " + boilerplate
}

// FormatPercent renders a progress value without a trailing ".0" for
// whole numbers (45, not 45.0).
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidationText renders a validation report as the synthetic first
// passage of an ingestion, so the sheet's own quality is queryable.
func ValidationText(report types.ValidationReport) string {
	return fmt.Sprintf("Spreadsheet validation: data quality %.1f%%. Warnings: %s. Recommendations: %s.",
		report.DataQualityScore,
		strings.Join(report.Warnings, ". "),
		strings.Join(report.Recommendations, ". "))
}
