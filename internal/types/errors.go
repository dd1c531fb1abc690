package types

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery rejects blank search or question text before any external
// call is made.
var ErrEmptyQuery = errors.New("query must not be empty")

// StructuralKind classifies a file-level ingestion failure.
type StructuralKind string

const (
	StructuralFileMissing StructuralKind = "file_missing"
	StructuralBadFormat   StructuralKind = "bad_format"
	StructuralPermission  StructuralKind = "permission"
	StructuralUnknown     StructuralKind = "unknown"
)

// StructuralError aborts a whole ingestion: the spreadsheet could not be
// read at all. It carries a remediation hint inferred from the underlying
// failure.
type StructuralError struct {
	Kind        StructuralKind
	Path        string
	Remediation string
	Err         error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot ingest %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot ingest %s", e.Path)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// UpstreamError surfaces a vector index or completion service failure. The
// core never retries; the caller decides what to do.
type UpstreamError struct {
	Service string // "vector index" or "completion"
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NotFoundError reports a project summary request that matched zero
// indexed passages.
type NotFoundError struct {
	Subject string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no activities found for %q", e.Subject)
}
