package extract

import (
	"strings"
	"testing"

	"trackpulse/internal/types"
)

var spanishHeader = []string{"Proyecto", "Asignado", "Actividad", "Progreso", "Notas"}

func extractOne(t *testing.T, columns []string, cells []string) types.ActivityRecord {
	t.Helper()
	rows := NormalizeRows([][]string{cells}, len(columns))
	if len(rows) != 1 {
		t.Fatalf("NormalizeRows kept %d rows, want 1", len(rows))
	}
	return Record(columns, rows[0], "plan.csv")
}

func TestRecord_WellFormedDelayedRow(t *testing.T) {
	rec := extractOne(t, spanishHeader, []string{
		"Alpha", "Ana", "Diseño", "45%",
		"Bloqueado por aprobación pendiente del cliente.",
	})

	if rec.ProjectName != "Alpha" || rec.Assignee != "Ana" || rec.ActivityName != "Diseño" {
		t.Fatalf("fields = %q/%q/%q", rec.ProjectName, rec.Assignee, rec.ActivityName)
	}
	if rec.ProgressPercentage == nil || *rec.ProgressPercentage != 45.0 {
		t.Fatalf("ProgressPercentage = %v, want 45", rec.ProgressPercentage)
	}
	if rec.Status != types.StatusDelayed || !rec.IsDelayed {
		t.Fatalf("status = %s, delayed = %v", rec.Status, rec.IsDelayed)
	}
	if len(rec.DelayReasons) != 1 || rec.DelayReasons[0] != "Bloqueado por aprobación pendiente del cliente" {
		t.Fatalf("DelayReasons = %v", rec.DelayReasons)
	}
	if rec.DataQuality != types.QualityComplete {
		t.Fatalf("DataQuality = %s, want complete", rec.DataQuality)
	}
	if rec.SourceFile != "plan.csv" || rec.SourceRowIndex != 0 {
		t.Fatalf("provenance = %s/%d", rec.SourceFile, rec.SourceRowIndex)
	}
}

func TestRecord_InvalidProgressValue(t *testing.T) {
	rec := extractOne(t, spanishHeader, []string{"Alpha", "Ana", "Diseño", "texto libre", ""})

	if rec.ProgressPercentage != nil {
		t.Fatalf("ProgressPercentage = %v, want nil", rec.ProgressPercentage)
	}
	if rec.Status != types.StatusUnknown || rec.IsDelayed {
		t.Fatalf("status = %s, delayed = %v", rec.Status, rec.IsDelayed)
	}
	foundInvalid := false
	foundNoProgress := false
	for _, w := range rec.Warnings {
		if strings.Contains(w, "invalid progress value") {
			foundInvalid = true
		}
		if strings.Contains(w, "no progress information") {
			foundNoProgress = true
		}
	}
	if !foundInvalid || !foundNoProgress {
		t.Fatalf("Warnings = %v", rec.Warnings)
	}
}

func TestRecord_StatusThresholds(t *testing.T) {
	cases := []struct {
		value   string
		want    float64
		status  types.Status
		delayed bool
	}{
		{"0", 0, types.StatusDelayed, true},
		{"49.9", 49.9, types.StatusDelayed, true},
		{"50", 50, types.StatusAtRisk, false},
		{"79.5%", 79.5, types.StatusAtRisk, false},
		{"80", 80, types.StatusOnTrack, false},
		{"100%", 100, types.StatusOnTrack, false},
		{"150%", 100, types.StatusOnTrack, false}, // clamped
		{"avance 62% aprox", 62, types.StatusAtRisk, false},
	}

	for _, tc := range cases {
		rec := extractOne(t, spanishHeader, []string{"Alpha", "Ana", "Diseño", tc.value, ""})
		if rec.ProgressPercentage == nil {
			t.Fatalf("%q: progress unset", tc.value)
		}
		if *rec.ProgressPercentage != tc.want {
			t.Errorf("%q: progress = %v, want %v", tc.value, *rec.ProgressPercentage, tc.want)
		}
		if rec.Status != tc.status {
			t.Errorf("%q: status = %s, want %s", tc.value, rec.Status, tc.status)
		}
		if rec.IsDelayed != tc.delayed {
			t.Errorf("%q: IsDelayed = %v, want %v", tc.value, rec.IsDelayed, tc.delayed)
		}
		if rec.IsDelayed != (rec.Status == types.StatusDelayed) {
			t.Errorf("%q: IsDelayed disagrees with status", tc.value)
		}
	}
}

func TestRecord_MissingCriticalFields(t *testing.T) {
	// One critical field empty: partial.
	rec := extractOne(t, spanishHeader, []string{"Alpha", "", "Diseño", "90", ""})
	if rec.DataQuality != types.QualityPartial {
		t.Fatalf("DataQuality = %s, want partial", rec.DataQuality)
	}
	if len(rec.MissingFields) != 1 || rec.MissingFields[0] != "Asignado" {
		t.Fatalf("MissingFields = %v", rec.MissingFields)
	}

	// Two critical fields empty: poor.
	rec = extractOne(t, spanishHeader, []string{"", "", "Diseño", "90", ""})
	if rec.DataQuality != types.QualityPoor {
		t.Fatalf("DataQuality = %s, want poor", rec.DataQuality)
	}
	found := false
	for _, w := range rec.Warnings {
		if strings.Contains(w, "missing critical fields") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Warnings = %v", rec.Warnings)
	}
}

func TestRecord_DateColumnsRouteByToken(t *testing.T) {
	columns := []string{"Proyecto", "Fecha inicio", "Fecha fin"}
	rec := extractOne(t, columns, []string{"Alpha", "2026-01-01", "2026-03-31"})

	if rec.TimelineStart != "2026-01-01" {
		t.Fatalf("TimelineStart = %q", rec.TimelineStart)
	}
	if rec.TimelineEnd != "2026-03-31" {
		t.Fatalf("TimelineEnd = %q", rec.TimelineEnd)
	}
}

func TestRecord_NotesAbsentYieldsNoSignals(t *testing.T) {
	rec := extractOne(t, spanishHeader, []string{"Alpha", "Ana", "Diseño", "85", ""})
	if rec.DelayReasons != nil || rec.PendingTasks != nil {
		t.Fatalf("signals = %v / %v, want empty", rec.DelayReasons, rec.PendingTasks)
	}
}

func TestParsePercentage(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"45%", 45, true},
		{"45.5", 45.5, true},
		{"  80 % ", 80, true},
		{"done 33.3 percent", 33.3, true},
		{"120", 100, true},
		{"texto libre", 0, false},
		{"", 0, false},
		{"%", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePercentage(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePercentage(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeRows(t *testing.T) {
	rows := [][]string{
		{"Alpha", " Ana ", "nan"},
		{"", "NaN", "null"}, // fully empty after cleaning: dropped
		{"Beta", "None", "ok"},
		{"Gamma"}, // short row padded
	}

	got := NormalizeRows(rows, 3)
	if len(got) != 3 {
		t.Fatalf("kept %d rows, want 3", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 2 || got[2].Index != 3 {
		t.Fatalf("indices = %d/%d/%d, want 0/2/3", got[0].Index, got[1].Index, got[2].Index)
	}
	if got[0].Cells[1] != "Ana" || got[0].Cells[2] != "" {
		t.Fatalf("row 0 cells = %v", got[0].Cells)
	}
	if got[2].Cells[1] != "" || got[2].Cells[2] != "" {
		t.Fatalf("padded row cells = %v", got[2].Cells)
	}
}
