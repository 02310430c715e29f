package library

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/config"
	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
)

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		patch   func(f *fixture) models.PatchProject
		wantErr error
	}{
		{
			name:    "empty patch",
			patch:   func(*fixture) models.PatchProject { return models.PatchProject{} },
			wantErr: domain.ErrNoOp,
		},
		{
			name: "clear name",
			patch: func(*fixture) models.PatchProject {
				return models.PatchProject{Name: patch.Clear[string]()}
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "clear folder",
			patch: func(*fixture) models.PatchProject {
				return models.PatchProject{Folder: patch.Clear[ids.FolderID]()}
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "name with slash",
			patch: func(*fixture) models.PatchProject {
				return models.PatchProject{Name: patch.Set("a/b")}
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing folder",
			patch: func(*fixture) models.PatchProject {
				return models.PatchProject{Folder: patch.Set(ids.FolderID{})}
			},
			wantErr: domain.ErrTargetNotFound,
		},
		{
			name: "rename",
			patch: func(*fixture) models.PatchProject {
				return models.PatchProject{Name: patch.Set(" Pauper ")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			project := f.project(t, "Modern", nil)

			updated, err := f.services.Projects.UpdateProject(ctx, project.ID, tt.patch(f))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Pauper", updated.Name)
		})
	}
}

func TestMoveProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.folder(t, "A", nil)
	project := f.project(t, "Modern", nil)

	moved, err := f.services.Projects.UpdateProject(ctx, project.ID, models.PatchProject{Folder: patch.Set(a.ID)})
	require.NoError(t, err)
	assert.Equal(t, a.ID, moved.Folder)

	children, err := f.services.Folders.GetFolderChildren(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, children.Projects, 1)
	assert.Equal(t, project.ID, children.Projects[0].ID)
}

func TestGetFolderProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.folder(t, "A", nil)
	f.project(t, "Pauper", &a.ID)
	f.project(t, "Legacy", &a.ID)
	f.project(t, "Modern", nil)

	projects, err := f.services.Projects.GetFolderProjects(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Legacy", projects[0].Name)
	assert.Equal(t, "Pauper", projects[1].Name)

	empty := f.folder(t, "Empty", nil)
	projects, err = f.services.Projects.GetFolderProjects(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)

	_, err = f.services.Projects.GetFolderProjects(ctx, missingFolder(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewProjectMissingFolder(t *testing.T) {
	f := newFixture(t)
	folder := missingFolder(t)

	_, err := f.services.Projects.NewProject(context.Background(), models.NewProject{Name: "Modern", Folder: &folder})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	project := f.project(t, "Modern", nil)
	list := f.list(t, "Main", project.ID)

	require.NoError(t, f.services.Projects.DeleteProject(ctx, project.ID))

	_, err := f.services.Lists.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.services.Projects.DeleteProject(ctx, project.ID), domain.ErrNotFound)
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	project := f.project(t, "Modern", nil)
	other := f.project(t, "Legacy", nil)
	f.list(t, "Sideboard", project.ID)
	main := f.list(t, "Main", project.ID)

	lists, err := f.services.Lists.GetProjectLists(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Main", lists[0].Name)

	_, err = f.services.Lists.NewList(ctx, models.NewList{Name: "Main"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	moved, err := f.services.Lists.UpdateList(ctx, main.ID, models.PatchList{Project: patch.Set(other.ID)})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.Project)

	missing, err := ids.ParseProjectID("project:missing")
	require.NoError(t, err)
	_, err = f.services.Lists.UpdateList(ctx, main.ID, models.PatchList{Project: patch.Set(missing)})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)

	_, err = f.services.Lists.GetProjectLists(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	project := f.project(t, "Modern", nil)
	list := f.list(t, "Main", project.ID)

	item, err := f.services.ListItems.NewListItem(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "bolt")})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuantity, item.Quantity)
	assert.Nil(t, item.Notes)

	t.Run("quantity bounds", func(t *testing.T) {
		for _, q := range []int{0, -1, config.MaxListItemQuantity + 1} {
			quantity := q
			_, err := f.services.ListItems.NewListItem(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "bolt"), Quantity: &quantity})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %d", q)

			_, err = f.services.ListItems.UpdateListItem(ctx, item.ID, models.PatchListItem{Quantity: patch.Set(q)})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %d", q)
		}
	})

	t.Run("notes set and clear", func(t *testing.T) {
		updated, err := f.services.ListItems.UpdateListItem(ctx, item.ID, models.PatchListItem{Notes: patch.Set("foil only"), Quantity: patch.Set(4)})
		require.NoError(t, err)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "foil only", *updated.Notes)
		assert.Equal(t, 4, updated.Quantity)

		cleared, err := f.services.ListItems.UpdateListItem(ctx, item.ID, models.PatchListItem{Notes: patch.Clear[string]()})
		require.NoError(t, err)
		assert.Nil(t, cleared.Notes)
		assert.Equal(t, 4, cleared.Quantity)
	})

	t.Run("notes too long", func(t *testing.T) {
		_, err := f.services.ListItems.UpdateListItem(ctx, item.ID, models.PatchListItem{Notes: patch.Set(strings.Repeat("x", config.MaxNotesLength+1))})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing list", func(t *testing.T) {
		missing, err := ids.ParseListID("list:missing")
		require.NoError(t, err)
		_, err = f.services.ListItems.NewListItem(ctx, models.NewListItem{List: missing, CardCore: cardCore(t, "bolt")})
		assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	})

	items, err := f.services.ListItems.GetListItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, f.services.ListItems.DeleteListItem(ctx, item.ID))
	assert.ErrorIs(t, f.services.ListItems.DeleteListItem(ctx, item.ID), domain.ErrNotFound)
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	red := "#FF0000"

	tag, err := f.services.Tags.NewTag(ctx, models.NewTag{Name: "burn", Color: &red})
	require.NoError(t, err)
	assert.Equal(t, &red, tag.Color)

	bad := "red"
	_, err = f.services.Tags.NewTag(ctx, models.NewTag{Name: "burn", Color: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.services.Tags.NewTag(ctx, models.NewTag{Name: strings.Repeat("t", config.MaxTagNameLength+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cleared, err := f.services.Tags.UpdateTag(ctx, tag.ID, models.PatchTag{Color: patch.Clear[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Color)

	_, err = f.services.Tags.UpdateTag(ctx, tag.ID, models.PatchTag{Name: patch.Clear[string]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tags, err := f.services.Tags.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, f.services.Tags.DeleteTag(ctx, tag.ID))
	_, err = f.services.Tags.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
