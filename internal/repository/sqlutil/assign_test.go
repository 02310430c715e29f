package sqlutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
)

func TestFolderAssignments(t *testing.T) {
	target, err := ids.ParseFolderID("folder:abc")
	require.NoError(t, err)

	tests := []struct {
		name  string
		patch models.PatchFolder
		want  Assignments
	}{
		{
			name:  "all ignore",
			patch: models.PatchFolder{},
			want:  nil,
		},
		{
			name:  "name only",
			patch: models.PatchFolder{Name: patch.Set("Decks")},
			want:  Assignments{{Column: "name", Value: "Decks"}},
		},
		{
			name:  "parent stores bare key",
			patch: models.PatchFolder{Parent: patch.Set(target)},
			want:  Assignments{{Column: "parent_id", Value: "abc"}},
		},
		{
			name:  "both in column order",
			patch: models.PatchFolder{Name: patch.Set("x"), Parent: patch.Set(target)},
			want: Assignments{
				{Column: "name", Value: "x"},
				{Column: "parent_id", Value: "abc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FolderAssignments(tt.patch))
		})
	}
}

func TestClearWritesNull(t *testing.T) {
	a := TagAssignments(models.PatchTag{Color: patch.Clear[string]()})
	require.Len(t, a, 1)
	assert.Equal(t, "color", a[0].Column)
	assert.Nil(t, a[0].Value)

	a = ListItemAssignments(models.PatchListItem{
		SelectedPrinting: patch.Clear[ids.CardPrintingID](),
		Notes:            patch.Set("foil"),
	})
	require.Len(t, a, 2)
	assert.Equal(t, Assignment{Column: "selected_printing"}, a[0])
	assert.Equal(t, Assignment{Column: "notes", Value: "foil"}, a[1])
}

func TestUpdateStatement(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := ProjectAssignments(models.PatchProject{Name: patch.Set("Cube")})

	query, args := a.UpdateStatement("dev_projects", ProjectColumns, Dollar, "p1", now)
	assert.Equal(t,
		"UPDATE dev_projects SET name = $1, updated_at = $2 WHERE id = $3 RETURNING "+ProjectColumns,
		query)
	assert.Equal(t, []any{"Cube", now, "p1"}, args)

	query, _ = a.UpdateStatement("projects", ProjectColumns, Question, "p1", now)
	assert.Equal(t,
		"UPDATE projects SET name = ?, updated_at = ? WHERE id = ? RETURNING "+ProjectColumns,
		query)

	// The receiver is left untouched.
	assert.Len(t, a, 1)
}
