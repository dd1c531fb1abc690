// Package schema maps raw spreadsheet column names to semantic roles using
// substring-matching keyword tables. The tables are bilingual
// (Spanish/English) and external to the matching logic so they can be
// extended without touching control flow.
package schema

import "trackpulse/internal/types"

// roleSpec binds a role category to its ordered list of lowercase keyword
// variants. A column matches a role when its lowercased, trimmed name
// contains any variant as a substring.
type roleSpec struct {
	Role     types.Role
	Variants []string
}

// roleTable lists the six role categories in fixed matching order:
// project, assignee, activity, progress, notes, dates. Per-row extraction
// assigns only the first matching category; structural validation counts a
// column toward every category it matches.
var roleTable = []roleSpec{
	{types.RoleProject, []string{"proyecto", "project", "nombre_proyecto", "project_name"}},
	{types.RoleAssignee, []string{"asignado", "assignee", "responsable", "encargado"}},
	{types.RoleActivity, []string{"actividad", "activity", "tarea", "task"}},
	{types.RoleProgress, []string{"progreso", "progress", "avance", "porcentaje", "completado"}},
	{types.RoleNotes, []string{"notas", "notes", "comentarios", "observaciones"}},
	{types.RoleDates, []string{"fecha", "date", "inicio", "fin", "start", "end", "timeline"}},
}

// Date column sub-tokens routing values into timeline start or end.
var (
	startTokens = []string{"inicio", "start"}
	endTokens   = []string{"fin", "end"}
)
