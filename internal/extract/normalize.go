// Package extract turns normalized spreadsheet rows into canonical
// activity records: it cleans raw cells, assigns values by column role,
// parses progress percentages, derives status, and mines notes for delay
// and pending-task signals. Extraction never fails on malformed cell
// content; bad values degrade to warnings on the record.
package extract

import "strings"

// nullTokens are cell values that spreadsheet tooling emits for absent
// data. They collapse to the empty string after trimming.
var nullTokens = map[string]struct{}{
	"nan":  {},
	"NaN":  {},
	"None": {},
	"null": {},
}

// CleanCell trims a raw cell value and collapses null-like tokens to "".
func CleanCell(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := nullTokens[value]; ok {
		return ""
	}
	return value
}

// NormalizedRow is one cleaned data row together with its index in the
// source sheet. Indices refer to the original row positions, so dropped
// empty rows leave gaps.
type NormalizedRow struct {
	Index int
	Cells []string
}

// NormalizeRows cleans every cell, pads short rows to the column count,
// and drops rows that are entirely empty after cleaning.
func NormalizeRows(rows [][]string, columnCount int) []NormalizedRow {
	var out []NormalizedRow
	for i, row := range rows {
		cells := make([]string, columnCount)
		empty := true
		for j := 0; j < columnCount && j < len(row); j++ {
			cells[j] = CleanCell(row[j])
			if cells[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		out = append(out, NormalizedRow{Index: i, Cells: cells})
	}
	return out
}
