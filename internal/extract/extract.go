package extract

import (
	"fmt"
	"strings"

	"trackpulse/internal/logging"
	"trackpulse/internal/mining"
	"trackpulse/internal/schema"
	"trackpulse/internal/types"
)

// Record extracts a canonical activity record from one normalized row.
// Columns are visited in source order; each is assigned at most the first
// role category its name matches. Malformed values never abort extraction,
// they become warnings on the record.
func Record(columns []string, row NormalizedRow, sourceFile string) types.ActivityRecord {
	rec := types.ActivityRecord{
		Status:         types.StatusUnknown,
		DataQuality:    types.QualityComplete,
		SourceRowIndex: row.Index,
		SourceFile:     sourceFile,
	}

	for i, col := range columns {
		if i >= len(row.Cells) {
			break
		}
		value := row.Cells[i]
		role, ok := schema.MatchRole(col)
		if !ok {
			continue
		}

		if value == "" {
			// Empty critical columns are tracked per source column name.
			switch role {
			case types.RoleProject, types.RoleAssignee, types.RoleActivity:
				rec.MissingFields = append(rec.MissingFields, col)
			}
			continue
		}

		switch role {
		case types.RoleProject:
			rec.ProjectName = value
		case types.RoleAssignee:
			rec.Assignee = value
		case types.RoleActivity:
			rec.ActivityName = value
		case types.RoleProgress:
			applyProgress(&rec, value)
		case types.RoleNotes:
			rec.Notes = value
			rec.DelayReasons = mining.DelayReasons(value)
			rec.PendingTasks = mining.PendingTasks(value)
		case types.RoleDates:
			if schema.IsStartColumn(col) {
				rec.TimelineStart = value
			} else if schema.IsEndColumn(col) {
				rec.TimelineEnd = value
			}
		}
	}

	gradeQuality(&rec)

	if rec.ProgressPercentage == nil {
		rec.Warnings = append(rec.Warnings, "no progress information")
	}

	logging.IngestDebug("row %d extracted: project=%q status=%s quality=%s warnings=%d",
		row.Index, rec.ProjectName, rec.Status, rec.DataQuality, len(rec.Warnings))
	return rec
}

// applyProgress parses a progress cell and derives status. Status is a
// pure function of the percentage; IsDelayed always agrees with it.
func applyProgress(rec *types.ActivityRecord, value string) {
	p, ok := ParsePercentage(value)
	if !ok {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("invalid progress value: %s", value))
		return
	}
	rec.ProgressPercentage = &p
	rec.Status = types.StatusForProgress(p)
	rec.IsDelayed = rec.Status == types.StatusDelayed
}

// gradeQuality counts how many of the critical fields are still unset and
// grades the record accordingly.
func gradeQuality(rec *types.ActivityRecord) {
	var missing []string
	if rec.ProjectName == "" {
		missing = append(missing, "project_name")
	}
	if rec.Assignee == "" {
		missing = append(missing, "assignee")
	}
	if rec.ActivityName == "" {
		missing = append(missing, "activity_name")
	}

	switch {
	case len(missing) >= 2:
		rec.DataQuality = types.QualityPoor
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("missing critical fields: %s", strings.Join(missing, ", ")))
	case len(missing) == 1:
		rec.DataQuality = types.QualityPartial
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("missing critical field: %s", missing[0]))
	}
}
