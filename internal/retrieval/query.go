package retrieval

import "strings"

// Intent keyword phrases seeding each specialized analysis. They describe
// the content being hunted for, not exact matches; the vector index does
// the semantic lifting.
var (
	DelayIntent = []string{
		"projects with delays", "delayed tasks", "identified problems",
	}
	PendingIntent = []string{
		"pending tasks", "to do", "complete", "review",
	}
)

// Query is a structured retrieval request: intent phrases plus optional
// project and assignee filters.
type Query struct {
	Intent      []string
	ProjectName string
	Assignee    string
}

// Phrase expands the query into a single search phrase by joining the
// intent phrases with the structured filters using single whitespace.
func (q Query) Phrase() string {
	parts := append([]string(nil), q.Intent...)
	if q.ProjectName != "" {
		parts = append(parts, "project "+q.ProjectName)
	}
	if q.Assignee != "" {
		parts = append(parts, "assigned to "+q.Assignee)
	}
	return strings.Join(parts, " ")
}
