// Package ingest drives a spreadsheet end-to-end: structural validation,
// row normalization, record extraction, passage assembly, and upsert into
// the vector index. Ingestion is best effort: a structurally poor sheet
// still produces passages, and row-level problems degrade to warnings.
// Only a file-level failure aborts the whole run.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trackpulse/internal/describe"
	"trackpulse/internal/extract"
	"trackpulse/internal/logging"
	"trackpulse/internal/retrieval"
	"trackpulse/internal/schema"
	"trackpulse/internal/types"
)

// criticalRoles must be present in a sheet's headers for complete
// analysis; their absence is warned about and scored, never fatal.
var criticalRoles = []types.Role{types.RoleProject, types.RoleAssignee, types.RoleActivity}

// invalidBelow is the quality score under which a sheet is marked invalid.
const invalidBelow = 30.0

// Orchestrator ingests sheets into a vector index.
type Orchestrator struct {
	index retrieval.VectorIndex
}

// New returns an ingestion orchestrator writing to the given index.
func New(index retrieval.VectorIndex) *Orchestrator {
	return &Orchestrator{index: index}
}

// Result reports one completed ingestion to the caller.
type Result struct {
	Report        types.ValidationReport
	Passages      []types.Passage
	RowsProcessed int
	Upserted      int
}

// IngestFile loads a CSV file and ingests it.
func (o *Orchestrator) IngestFile(ctx context.Context, path string) (*Result, error) {
	sheet, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return o.IngestSheet(ctx, sheet)
}

// IngestSheet validates, extracts, and indexes one sheet.
func (o *Orchestrator) IngestSheet(ctx context.Context, sheet *Sheet) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryIngest, "IngestSheet")
	defer timer.Stop()

	report, passages := BuildPassages(sheet)

	count, err := o.index.Upsert(ctx, passages)
	if err != nil {
		return nil, &types.UpstreamError{Service: "vector index", Err: err}
	}

	logging.Ingest("ingested %s: %d rows, %d passages, score %.1f, upserted %d",
		sheet.Source, len(passages)-1, len(passages), report.DataQualityScore, count)

	return &Result{
		Report:        report,
		Passages:      passages,
		RowsProcessed: len(passages) - 1,
		Upserted:      count,
	}, nil
}

// BuildPassages is the pure part of ingestion: it validates the sheet
// structure and turns every non-empty row into an indexable passage. The
// first passage always encodes the validation report itself, so ingestion
// metadata is queryable alongside the data.
func BuildPassages(sheet *Sheet) (types.ValidationReport, []types.Passage) {
	report := validateStructure(sheet.Columns)

	passages := []types.Passage{validationPassage(sheet, report)}

	rows := extract.NormalizeRows(sheet.Rows, len(sheet.Columns))
	for _, row := range rows {
		rec := extract.Record(sheet.Columns, row, sheet.Source)
		passages = append(passages, types.Passage{
			ID:       passageID(rec),
			Text:     describe.Text(rec),
			Metadata: buildMetadata(sheet, row, rec, report),
		})
	}

	return report, passages
}

// validateStructure scores header coverage against the six role
// categories. A score below 30 marks the sheet invalid, but ingestion
// still proceeds.
func validateStructure(columns []string) types.ValidationReport {
	c := schema.Classify(columns)
	found := c.RolesFound()

	report := types.ValidationReport{
		ColumnRoles:      c.ColumnRoles,
		RolesFound:       found,
		DataQualityScore: float64(len(found)) / float64(types.RoleCount) * 100,
		IsValid:          true,
	}

	var missingCritical []string
	for _, role := range criticalRoles {
		if len(c.Found[role]) == 0 {
			missingCritical = append(missingCritical, string(role))
		}
	}
	if len(missingCritical) > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("missing critical columns: %s", strings.Join(missingCritical, ", ")))
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("add columns for: %s", strings.Join(missingCritical, ", ")))
	}
	if len(c.Found[types.RoleProgress]) == 0 {
		report.Warnings = append(report.Warnings, "no progress information found")
		report.Recommendations = append(report.Recommendations,
			"add a progress column (e.g. 'Progreso', 'Avance', 'Progress')")
	}
	if report.DataQualityScore < invalidBelow {
		report.IsValid = false
		report.Warnings = append(report.Warnings,
			"data structure insufficient for complete analysis")
	}

	logging.Ingest("validated %d columns: score %.1f, valid=%v",
		len(columns), report.DataQualityScore, report.IsValid)
	return report
}

// validationPassage encodes the report as the synthetic first passage.
func validationPassage(sheet *Sheet, report types.ValidationReport) types.Passage {
	return types.Passage{
		ID:   "validation_info_" + randomSuffix(),
		Text: describe.ValidationText(report),
		Metadata: types.Metadata{
			"file_source":           sheet.Source,
			"analysis_type":         "file_validation",
			"data_quality_score":    report.DataQualityScore,
			"warnings_count":        len(report.Warnings),
			"recommendations_count": len(report.Recommendations),
			"row_index":             -1,
		},
	}
}

// passageID composes a unique id from the project name (or a row-index
// fallback) and a random suffix. Ids are generated once and never reused,
// which keeps concurrent ingestions of different files safe.
func passageID(rec types.ActivityRecord) string {
	name := rec.ProjectName
	if name == "" {
		name = fmt.Sprintf("row_%d", rec.SourceRowIndex)
	}
	return fmt.Sprintf("project_%s_%d_%s", name, rec.SourceRowIndex, randomSuffix())
}

func randomSuffix() string {
	u := uuid.New()
	return fmt.Sprintf("%x", u[:4])
}

// buildMetadata flattens a row into the passage metadata bag: every
// cleaned source-column value keyed by column name, then the derived
// record fields, then provenance. Derived keys are written last and win
// any collision with a source column of the same name.
func buildMetadata(sheet *Sheet, row extract.NormalizedRow, rec types.ActivityRecord, report types.ValidationReport) types.Metadata {
	md := make(types.Metadata, len(sheet.Columns)+16)

	for i, col := range sheet.Columns {
		if i < len(row.Cells) {
			md[col] = row.Cells[i]
		} else {
			md[col] = ""
		}
	}

	progress := 0.0
	if rec.ProgressPercentage != nil {
		progress = *rec.ProgressPercentage
	}

	md["assignee"] = rec.Assignee
	md["project_name"] = rec.ProjectName
	md["activity_name"] = rec.ActivityName
	md["progress_percentage"] = progress
	md["notes"] = rec.Notes
	md["status"] = string(rec.Status)
	md["is_delayed"] = rec.IsDelayed
	md["data_quality"] = string(rec.DataQuality)
	md["delay_reasons"] = rec.DelayReasons
	md["pending_tasks"] = rec.PendingTasks
	md["warnings"] = rec.Warnings
	md["missing_fields"] = rec.MissingFields
	md["timeline_start"] = rec.TimelineStart
	md["timeline_end"] = rec.TimelineEnd

	md["row_index"] = rec.SourceRowIndex
	md["file_source"] = sheet.Source
	md["analysis_type"] = "project_management"
	md["validation_score"] = report.DataQualityScore

	return md
}
