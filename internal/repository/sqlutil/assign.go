// Package sqlutil holds the SQL helpers shared by the relational stores.
//
// Updates are never built by concatenating values into SQL. A patch payload is
// first turned into Assignments, a list of (column, value) pairs containing
// only the Set and Clear fields, which is then rendered with bind parameters
// in the dialect of the target database.
package sqlutil

import (
	"strconv"
	"strings"
	"time"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
)

// Assignment is one "column = value" pair. A nil Value writes NULL.
type Assignment struct {
	Column string
	Value  any
}

// Assignments is the ordered SET list of an UPDATE.
type Assignments []Assignment

// Add appends an assignment.
func (a *Assignments) Add(column string, value any) {
	*a = append(*a, Assignment{Column: column, Value: value})
}

// Empty reports whether there is nothing to write.
func (a Assignments) Empty() bool { return len(a) == 0 }

// Placeholder renders the n-th (1-based) bind parameter of a statement.
type Placeholder func(n int) string

// Dollar is the PostgreSQL placeholder style ($1, $2, ...).
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// Question is the SQLite placeholder style.
func Question(int) string { return "?" }

// SetClause renders "a = $1, b = $2" with numbering starting at start and
// returns the matching arguments.
func (a Assignments) SetClause(ph Placeholder, start int) (string, []any) {
	parts := make([]string, len(a))
	args := make([]any, len(a))
	for i, as := range a {
		parts[i] = as.Column + " = " + ph(start+i)
		args[i] = as.Value
	}
	return strings.Join(parts, ", "), args
}

// UpdateStatement renders
//
//	UPDATE table SET ..., updated_at = ? WHERE id = ? RETURNING returning
//
// The caller must have checked that a is not empty.
func (a Assignments) UpdateStatement(table, returning string, ph Placeholder, key string, now time.Time) (string, []any) {
	withTouch := append(Assignments{}, a...)
	withTouch.Add("updated_at", now)
	set, args := withTouch.SetClause(ph, 1)
	query := "UPDATE " + table + " SET " + set +
		" WHERE id = " + ph(len(args)+1) +
		" RETURNING " + returning
	return query, append(args, key)
}

// Value adds an assignment for a plain-valued patch. Ignore adds nothing and
// Clear writes NULL.
func Value[T any](a *Assignments, column string, p patch.Patch[T]) {
	switch {
	case p.IsClear():
		a.Add(column, nil)
	case p.IsSet():
		v, _ := p.Get()
		a.Add(column, v)
	}
}

// Ref adds an assignment for a reference patch, storing the bare key.
func Ref[K ids.Kind](a *Assignments, column string, p patch.Patch[ids.ID[K]]) {
	switch {
	case p.IsClear():
		a.Add(column, nil)
	case p.IsSet():
		id, _ := p.Get()
		a.Add(column, id.Key())
	}
}

// FolderAssignments maps a folder patch to columns.
func FolderAssignments(p models.PatchFolder) Assignments {
	var a Assignments
	Value(&a, "name", p.Name)
	Ref(&a, "parent_id", p.Parent)
	return a
}

// ProjectAssignments maps a project patch to columns.
func ProjectAssignments(p models.PatchProject) Assignments {
	var a Assignments
	Value(&a, "name", p.Name)
	Ref(&a, "folder_id", p.Folder)
	return a
}

// ListAssignments maps a list patch to columns.
func ListAssignments(p models.PatchList) Assignments {
	var a Assignments
	Value(&a, "name", p.Name)
	Ref(&a, "project_id", p.Project)
	return a
}

// ListItemAssignments maps a list item patch to columns.
func ListItemAssignments(p models.PatchListItem) Assignments {
	var a Assignments
	Ref(&a, "selected_printing", p.SelectedPrinting)
	Value(&a, "quantity", p.Quantity)
	Value(&a, "notes", p.Notes)
	return a
}

// TagAssignments maps a tag patch to columns.
func TagAssignments(p models.PatchTag) Assignments {
	var a Assignments
	Value(&a, "name", p.Name)
	Value(&a, "color", p.Color)
	return a
}
