package schema

import (
	"strings"

	"trackpulse/internal/logging"
	"trackpulse/internal/types"
)

// Classification is the structural view of a sheet's headers: every role
// each column matched, plus the columns found per role category.
type Classification struct {
	ColumnRoles map[string][]types.Role
	Found       map[types.Role][]string
}

// Classify assigns semantic roles to raw column headers. There are no
// error conditions: an absent role is a quality shortfall reported by the
// validation layer, not a failure here.
func Classify(columns []string) Classification {
	c := Classification{
		ColumnRoles: make(map[string][]types.Role),
		Found:       make(map[types.Role][]string),
	}

	for _, col := range columns {
		name := normalize(col)
		for _, spec := range roleTable {
			if containsAny(name, spec.Variants) {
				c.ColumnRoles[col] = append(c.ColumnRoles[col], spec.Role)
				c.Found[spec.Role] = append(c.Found[spec.Role], col)
			}
		}
	}

	logging.SchemaDebug("classified %d columns, %d roles found", len(columns), len(c.Found))
	return c
}

// RolesFound returns the detected role categories in fixed table order.
func (c Classification) RolesFound() []types.Role {
	var roles []types.Role
	for _, spec := range roleTable {
		if len(c.Found[spec.Role]) > 0 {
			roles = append(roles, spec.Role)
		}
	}
	return roles
}

// MatchRole returns the first role category a column name matches, in
// fixed table order. Used by per-row extraction, where a column is
// assigned at most one role.
func MatchRole(column string) (types.Role, bool) {
	name := normalize(column)
	for _, spec := range roleTable {
		if containsAny(name, spec.Variants) {
			return spec.Role, true
		}
	}
	return "", false
}

// IsStartColumn reports whether a date column routes into timeline start.
func IsStartColumn(column string) bool {
	return containsAny(normalize(column), startTokens)
}

// IsEndColumn reports whether a date column routes into timeline end.
func IsEndColumn(column string) bool {
	return containsAny(normalize(column), endTokens)
}

func normalize(column string) string {
	return strings.ToLower(strings.TrimSpace(column))
}

func containsAny(name string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(name, v) {
			return true
		}
	}
	return false
}
