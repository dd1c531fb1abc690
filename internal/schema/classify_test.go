package schema

import (
	"reflect"
	"testing"

	"trackpulse/internal/types"
)

func TestClassify_SpanishHeaders(t *testing.T) {
	columns := []string{"Proyecto", "Asignado", "Actividad", "Progreso", "Notas"}

	c := Classify(columns)

	want := map[string][]types.Role{
		"Proyecto":  {types.RoleProject},
		"Asignado":  {types.RoleAssignee},
		"Actividad": {types.RoleActivity},
		"Progreso":  {types.RoleProgress},
		"Notas":     {types.RoleNotes},
	}
	if !reflect.DeepEqual(c.ColumnRoles, want) {
		t.Fatalf("ColumnRoles = %#v, want %#v", c.ColumnRoles, want)
	}

	roles := c.RolesFound()
	wantRoles := []types.Role{
		types.RoleProject, types.RoleAssignee, types.RoleActivity,
		types.RoleProgress, types.RoleNotes,
	}
	if !reflect.DeepEqual(roles, wantRoles) {
		t.Fatalf("RolesFound() = %v, want %v", roles, wantRoles)
	}
}

func TestClassify_ColumnCanMatchMultipleRoles(t *testing.T) {
	// "Fecha inicio proyecto" contains a project variant and two date
	// variants; structural validation counts it toward both categories.
	c := Classify([]string{"Fecha inicio proyecto"})

	got := c.ColumnRoles["Fecha inicio proyecto"]
	want := []types.Role{types.RoleProject, types.RoleDates}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ColumnRoles = %v, want %v", got, want)
	}
}

func TestClassify_UnrecognizedColumnsGetNoRole(t *testing.T) {
	c := Classify([]string{"Presupuesto", "Color favorito"})

	if len(c.ColumnRoles) != 0 {
		t.Fatalf("expected no roles, got %#v", c.ColumnRoles)
	}
	if len(c.RolesFound()) != 0 {
		t.Fatalf("expected no roles found, got %v", c.RolesFound())
	}
}

func TestMatchRole_FirstCategoryWins(t *testing.T) {
	// The same column that matches multiple roles structurally is assigned
	// only the first category in table order during extraction.
	role, ok := MatchRole("Fecha inicio proyecto")
	if !ok || role != types.RoleProject {
		t.Fatalf("MatchRole = %v, %v; want project, true", role, ok)
	}

	role, ok = MatchRole("Fecha inicio")
	if !ok || role != types.RoleDates {
		t.Fatalf("MatchRole = %v, %v; want dates, true", role, ok)
	}

	if _, ok := MatchRole("Presupuesto"); ok {
		t.Fatal("expected no role for unrecognized column")
	}
}

func TestMatchRole_CaseAndWhitespaceInsensitive(t *testing.T) {
	cases := map[string]types.Role{
		"  PROGRESS  ":   types.RoleProgress,
		"Avance (%)":     types.RoleProgress,
		"English Notes":  types.RoleNotes,
		"Observaciones":  types.RoleNotes,
		"Tarea asignada": types.RoleActivity,
		"end_date":       types.RoleDates,
	}
	for col, want := range cases {
		role, ok := MatchRole(col)
		if !ok || role != want {
			t.Errorf("MatchRole(%q) = %v, %v; want %v", col, role, ok, want)
		}
	}
}

func TestStartEndColumnRouting(t *testing.T) {
	if !IsStartColumn("Fecha inicio") || IsEndColumn("Fecha inicio") {
		t.Fatal("'Fecha inicio' should be a start column only")
	}
	if !IsEndColumn("end_date") {
		t.Fatal("'end_date' should be an end column")
	}
	if IsStartColumn("timeline") || IsEndColumn("timeline") {
		t.Fatal("'timeline' is neither start nor end")
	}
}
