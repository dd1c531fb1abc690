// Package types holds the shared data model for the trackpulse pipeline:
// activity records extracted from tracking spreadsheets, validation reports,
// indexable passages, and the error taxonomy used across package boundaries.
package types

// Status is the derived health of a tracked activity. It is a pure function
// of the progress percentage and is never set directly.
type Status string

const (
	StatusOnTrack Status = "on_track"
	StatusAtRisk  Status = "at_risk"
	StatusDelayed Status = "delayed"
	StatusUnknown Status = "unknown"
)

// Progress thresholds separating the three known statuses.
const (
	DelayedBelow = 50.0
	AtRiskBelow  = 80.0
)

// StatusForProgress maps a progress percentage to a status.
// Progress below 50 is delayed, below 80 at risk, otherwise on track.
func StatusForProgress(progress float64) Status {
	switch {
	case progress < DelayedBelow:
		return StatusDelayed
	case progress < AtRiskBelow:
		return StatusAtRisk
	default:
		return StatusOnTrack
	}
}

// DataQuality grades how many of the critical fields (project, assignee,
// activity) were present in a source row.
type DataQuality string

const (
	QualityComplete DataQuality = "complete"
	QualityPartial  DataQuality = "partial"
	QualityPoor     DataQuality = "poor"
)

// ActivityRecord is the canonical normalized representation of one tracked
// row. Records are created once during ingestion and never mutated;
// re-ingesting a file produces new records with new passage ids.
type ActivityRecord struct {
	Assignee     string
	ProjectName  string
	ActivityName string

	// ProgressPercentage is nil when the row carried no parseable progress
	// value. When set it is clamped to [0,100].
	ProgressPercentage *float64

	Status    Status
	IsDelayed bool

	Notes        string
	DelayReasons []string
	PendingTasks []string

	TimelineStart string
	TimelineEnd   string

	DataQuality   DataQuality
	MissingFields []string
	Warnings      []string

	SourceRowIndex int
	SourceFile     string
}

// Role is a semantic category assigned to a raw spreadsheet column.
type Role string

const (
	RoleProject  Role = "project"
	RoleAssignee Role = "assignee"
	RoleActivity Role = "activity"
	RoleProgress Role = "progress"
	RoleNotes    Role = "notes"
	RoleDates    Role = "dates"
)

// RoleCount is the number of role categories a sheet is scored against.
const RoleCount = 6

// ValidationReport describes the structural quality of one ingested sheet.
type ValidationReport struct {
	// ColumnRoles records every role each column matched. A column may
	// count toward multiple roles for scoring even though per-row
	// extraction assigns it only one.
	ColumnRoles map[string][]Role

	// RolesFound lists the role categories detected at least once, in
	// fixed category order.
	RolesFound []Role

	// DataQualityScore is the percentage of the six role categories found.
	DataQualityScore float64

	Warnings        []string
	Recommendations []string
	IsValid         bool
}

// Metadata is the loosely-typed bag attached to a passage: every cleaned
// source-column value keyed by column name, overlaid with the derived
// activity record fields and provenance keys.
type Metadata map[string]any

// Passage pairs a unique id with descriptive text and metadata. It is the
// unit handed to the vector index. The id is generated once at creation and
// is immutable thereafter.
type Passage struct {
	ID       string
	Text     string
	Metadata Metadata
}

// SearchHit is one ranked result from a similarity search.
type SearchHit struct {
	ID       string
	Score    float64
	Metadata Metadata
}
