// Package storetest holds the behaviour every library Store backend must
// share. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
	repo "lotuslab/internal/domain/repositories/library"
)

// Run runs the store suite. open must return an empty store (root folder
// only) on every call.
func Run(t *testing.T, open func(t *testing.T) *repo.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s *repo.Store)
	}{
		{"root folder", testRootFolder},
		{"folder lifecycle", testFolderLifecycle},
		{"folder children", testFolderChildren},
		{"folder references", testFolderReferences},
		{"project cascade", testProjectCascade},
		{"list moves", testListMoves},
		{"list items", testListItems},
		{"tags", testTags},
		{"transactions", testTransactions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func testRootFolder(t *testing.T, s *repo.Store) {
	root, err := s.Folders.Get(context.Background(), ids.RootFolderID())
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Parent)
	assert.Equal(t, "Library", root.Name)

	other, err := s.Folders.Create(context.Background(), models.NewFolder{Name: "Decks"})
	require.NoError(t, err)
	_, err = s.Folders.Update(context.Background(), root.ID, models.PatchFolder{Parent: patch.Set(other.ID)})
	assert.ErrorIs(t, err, domain.ErrRootFolder)

	root, err = s.Folders.Get(context.Background(), ids.RootFolderID())
	require.NoError(t, err)
	assert.Nil(t, root.Parent)
}

func testFolderLifecycle(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	created, err := s.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
	require.NoError(t, err)
	require.NotNil(t, created.Parent)
	assert.True(t, ids.IsRoot(*created.Parent))
	assert.False(t, created.ID.IsZero())

	got, err := s.Folders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Decks", got.Name)

	renamed, err := s.Folders.Update(ctx, created.ID, models.PatchFolder{Name: patch.Set("Cubes")})
	require.NoError(t, err)
	assert.Equal(t, "Cubes", renamed.Name)
	assert.Equal(t, created.Parent, renamed.Parent)
	assert.False(t, renamed.UpdatedAt.Before(created.UpdatedAt))

	_, err = s.Folders.Update(ctx, created.ID, models.PatchFolder{})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	_, err = s.Folders.Update(ctx, created.ID, models.PatchFolder{Name: patch.Clear[string]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := ids.FolderIDFromKey("missing")
	require.NoError(t, err)
	_, err = s.Folders.Update(ctx, missing, models.PatchFolder{Name: patch.Set("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Folders.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Folders.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Folders.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = s.Folders.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testFolderChildren(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	parent, err := s.Folders.Create(ctx, models.NewFolder{Name: "Constructed"})
	require.NoError(t, err)
	for _, name := range []string{"Pauper", "modern horizons", "Modern", "Legacy"} {
		_, err := s.Folders.Create(ctx, models.NewFolder{Name: name, Parent: &parent.ID})
		require.NoError(t, err)
	}
	for _, name := range []string{"Zoo", "Affinity"} {
		_, err := s.Projects.Create(ctx, models.NewProject{Name: name, Folder: &parent.ID})
		require.NoError(t, err)
	}

	children, err := s.Folders.GetChildren(ctx, parent.ID)
	require.NoError(t, err)

	var folders, projects []string
	for _, f := range children.Folders {
		folders = append(folders, f.Name)
	}
	for _, p := range children.Projects {
		projects = append(projects, p.Name)
	}
	// Names order by code point on every backend, so upper case sorts first
	assert.Equal(t, []string{"Legacy", "Modern", "Pauper", "modern horizons"}, folders)
	assert.Equal(t, []string{"Affinity", "Zoo"}, projects)

	listed, err := s.Projects.ListByFolder(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	empty, err := s.Folders.Create(ctx, models.NewFolder{Name: "Empty"})
	require.NoError(t, err)
	children, err = s.Folders.GetChildren(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, children.Folders)
	assert.Empty(t, children.Folders)
	assert.NotNil(t, children.Projects)
	assert.Empty(t, children.Projects)

	missing, err := ids.FolderIDFromKey("missing")
	require.NoError(t, err)
	_, err = s.Folders.GetChildren(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testFolderReferences(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	missing, err := ids.FolderIDFromKey("missing")
	require.NoError(t, err)

	_, err = s.Folders.Create(ctx, models.NewFolder{Name: "Orphan", Parent: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	parent, err := s.Folders.Create(ctx, models.NewFolder{Name: "Parent"})
	require.NoError(t, err)
	_, err = s.Folders.Create(ctx, models.NewFolder{Name: "Child", Parent: &parent.ID})
	require.NoError(t, err)

	// A folder with children can't be removed on its own
	assert.ErrorIs(t, s.Folders.Delete(ctx, parent.ID), domain.ErrInvalidInput)

	project, err := s.Projects.Create(ctx, models.NewProject{Name: "Modern"})
	require.NoError(t, err)
	_, err = s.Projects.Update(ctx, project.ID, models.PatchProject{Folder: patch.Set(missing)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	moved, err := s.Projects.Update(ctx, project.ID, models.PatchProject{Folder: patch.Set(parent.ID)})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, moved.Folder)
	assert.Equal(t, "Modern", moved.Name)
}

func testProjectCascade(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	project, err := s.Projects.Create(ctx, models.NewProject{Name: "Modern"})
	require.NoError(t, err)
	assert.True(t, ids.IsRoot(project.Folder))

	list, err := s.Lists.Create(ctx, models.NewList{Name: "Main", Project: project.ID})
	require.NoError(t, err)
	item, err := s.ListItems.Create(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "bolt")})
	require.NoError(t, err)

	require.NoError(t, s.Projects.Delete(ctx, project.ID))

	_, err = s.Projects.Get(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Lists.Get(ctx, list.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.ListItems.Get(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Projects.Delete(ctx, project.ID), domain.ErrNotFound)
}

func testListMoves(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	a, err := s.Projects.Create(ctx, models.NewProject{Name: "A"})
	require.NoError(t, err)
	b, err := s.Projects.Create(ctx, models.NewProject{Name: "B"})
	require.NoError(t, err)

	side, err := s.Lists.Create(ctx, models.NewList{Name: "Sideboard", Project: a.ID})
	require.NoError(t, err)
	_, err = s.Lists.Create(ctx, models.NewList{Name: "Main", Project: a.ID})
	require.NoError(t, err)

	lists, err := s.Lists.ListByProject(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Main", lists[0].Name)
	assert.Equal(t, "Sideboard", lists[1].Name)

	moved, err := s.Lists.Update(ctx, side.ID, models.PatchList{Project: patch.Set(b.ID), Name: patch.Set("Maybeboard")})
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.Project)
	assert.Equal(t, "Maybeboard", moved.Name)

	_, err = s.Lists.Update(ctx, side.ID, models.PatchList{Project: patch.Clear[ids.ProjectID]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, s.Lists.Delete(ctx, side.ID))
	lists, err = s.Lists.ListByProject(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func testListItems(t *testing.T, s *repo.Store) {
	ctx := context.Background()

	project, err := s.Projects.Create(ctx, models.NewProject{Name: "Modern"})
	require.NoError(t, err)
	list, err := s.Lists.Create(ctx, models.NewList{Name: "Main", Project: project.ID})
	require.NoError(t, err)

	item, err := s.ListItems.Create(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "bolt")})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuantity, item.Quantity)
	assert.Nil(t, item.SelectedPrinting)
	assert.Nil(t, item.Notes)
	assert.Equal(t, cardCore(t, "bolt"), item.CardCore)

	printing, err := ids.CardPrintingIDFromKey("bolt-m10")
	require.NoError(t, err)
	updated, err := s.ListItems.Update(ctx, item.ID, models.PatchListItem{
		SelectedPrinting: patch.Set(printing),
		Quantity:         patch.Set(4),
		Notes:            patch.Set("foil"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SelectedPrinting)
	assert.Equal(t, printing, *updated.SelectedPrinting)
	assert.Equal(t, 4, updated.Quantity)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "foil", *updated.Notes)

	// Clear nulls optional fields and leaves Ignore fields untouched
	cleared, err := s.ListItems.Update(ctx, item.ID, models.PatchListItem{
		SelectedPrinting: patch.Clear[ids.CardPrintingID](),
		Notes:            patch.Clear[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.SelectedPrinting)
	assert.Nil(t, cleared.Notes)
	assert.Equal(t, 4, cleared.Quantity)

	_, err = s.ListItems.Update(ctx, item.ID, models.PatchListItem{Quantity: patch.Clear[int]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	second, err := s.ListItems.Create(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "counterspell")})
	require.NoError(t, err)

	items, err := s.ListItems.ListByList(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	missing, err := ids.ListIDFromKey("missing")
	require.NoError(t, err)
	_, err = s.ListItems.Create(ctx, models.NewListItem{List: missing, CardCore: cardCore(t, "bolt")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, s.ListItems.Delete(ctx, item.ID))
	assert.ErrorIs(t, s.ListItems.Delete(ctx, item.ID), domain.ErrNotFound)
}

func testTags(t *testing.T, s *repo.Store) {
	ctx := context.Background()
	color := "#112233"

	burn, err := s.Tags.Create(ctx, models.NewTag{Name: "burn", Color: &color})
	require.NoError(t, err)
	_, err = s.Tags.Create(ctx, models.NewTag{Name: "aggro"})
	require.NoError(t, err)

	tags, err := s.Tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "aggro", tags[0].Name)
	assert.Nil(t, tags[0].Color)

	cleared, err := s.Tags.Update(ctx, burn.ID, models.PatchTag{Color: patch.Clear[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Color)
	assert.Equal(t, "burn", cleared.Name)

	require.NoError(t, s.Tags.Delete(ctx, burn.ID))
	_, err = s.Tags.Get(ctx, burn.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testTransactions(t *testing.T, s *repo.Store) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := s.Tx.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.Folders.Create(ctx, models.NewFolder{Name: "Doomed"})
		if err != nil {
			return err
		}
		if _, err := s.Projects.Create(ctx, models.NewProject{Name: "Doomed", Folder: &folder.ID}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	children, err := s.Folders.GetChildren(ctx, ids.RootFolderID())
	require.NoError(t, err)
	assert.Empty(t, children.Folders)

	// A nested ExecTx joins the outer transaction
	var created *models.Folder
	err = s.Tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.Tx.ExecTx(ctx, func(ctx context.Context) error {
			var err error
			created, err = s.Folders.Create(ctx, models.NewFolder{Name: "Kept"})
			return err
		})
	})
	require.NoError(t, err)

	got, err := s.Folders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Name)
}

func cardCore(t *testing.T, key string) ids.CardCoreID {
	t.Helper()
	id, err := ids.CardCoreIDFromKey(key)
	require.NoError(t, err)
	return id
}
