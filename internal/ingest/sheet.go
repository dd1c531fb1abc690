package ingest

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"

	"trackpulse/internal/types"
)

// Sheet is the in-memory spreadsheet handle the orchestrator operates on.
// How the bytes got here (CSV file, upload, another reader) is glue; the
// pipeline only sees headers and raw rows.
type Sheet struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// LoadCSV reads a CSV file into a Sheet. The first record is the header
// row. File-level failures classify into a StructuralError carrying a
// remediation hint.
func LoadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are normalized later

	records, err := r.ReadAll()
	if err != nil {
		return nil, classifyFileError(path, err)
	}
	if len(records) == 0 {
		return nil, &types.StructuralError{
			Kind:        types.StructuralBadFormat,
			Path:        path,
			Remediation: "the file has no header row; export the sheet with column names in the first row",
			Err:         errors.New("empty file"),
		}
	}

	return &Sheet{
		Source:  filepath.Base(path),
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// classifyFileError infers an error kind and a suggested remediation from
// the underlying failure.
func classifyFileError(path string, err error) *types.StructuralError {
	se := &types.StructuralError{Kind: types.StructuralUnknown, Path: path, Err: err}

	var parseErr *csv.ParseError
	switch {
	case os.IsNotExist(err):
		se.Kind = types.StructuralFileMissing
		se.Remediation = "verify the file exists at the given path"
	case os.IsPermission(err):
		se.Kind = types.StructuralPermission
		se.Remediation = "close the file if it is open elsewhere and check read permissions"
	case errors.As(err, &parseErr):
		se.Kind = types.StructuralBadFormat
		se.Remediation = "verify the file is valid CSV; re-export the spreadsheet if needed"
	default:
		se.Remediation = "verify the file is a readable CSV spreadsheet"
	}
	return se
}
