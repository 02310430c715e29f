package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/config"
	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

func TestNewFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to root", func(t *testing.T) {
		f := newFixture(t)
		folder := f.folder(t, "  Decks  ", nil)

		assert.Equal(t, "Decks", folder.Name)
		require.NotNil(t, folder.Parent)
		assert.True(t, ids.IsRoot(*folder.Parent))
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		parent := missingFolder(t)

		_, err := f.services.Folders.NewFolder(ctx, models.NewFolder{Name: "Decks", Parent: &parent})
		assert.ErrorIs(t, err, domain.ErrTargetNotFound)
		assert.Zero(t, f.folders.writes.Load())
	})

	t.Run("duplicate sibling", func(t *testing.T) {
		f := newFixture(t)
		existing := f.folder(t, "Decks", nil)

		_, err := f.services.Folders.NewFolder(ctx, models.NewFolder{Name: "Decks"})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)

		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, existing.ID.String(), conflict.ResourceID)
	})

	t.Run("invalid names", func(t *testing.T) {
		f := newFixture(t)
		for _, name := range []string{"", "   ", "a/b"} {
			_, err := f.services.Folders.NewFolder(ctx, models.NewFolder{Name: name})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "name %q", name)
		}
	})
}

func TestRenameFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("renames", func(t *testing.T) {
		f := newFixture(t)
		folder := f.folder(t, "Decks", nil)

		renamed, err := f.services.Folders.RenameFolder(ctx, folder.ID, "Cubes")
		require.NoError(t, err)
		assert.Equal(t, "Cubes", renamed.Name)
		assert.Equal(t, folder.ID, renamed.ID)

		got, err := f.services.Folders.GetFolderMetadata(ctx, folder.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cubes", got.Name)
	})

	t.Run("same name writes nothing", func(t *testing.T) {
		f := newFixture(t)
		folder := f.folder(t, "Decks", nil)
		before := f.folders.writes.Load()

		got, err := f.services.Folders.RenameFolder(ctx, folder.ID, "Decks")
		require.NoError(t, err)
		assert.Equal(t, folder.UpdatedAt, got.UpdatedAt)
		assert.Equal(t, before, f.folders.writes.Load())
	})

	t.Run("root", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.services.Folders.RenameFolder(ctx, ids.RootFolderID(), "Everything")
		assert.ErrorIs(t, err, domain.ErrRootFolder)
	})

	t.Run("sibling conflict", func(t *testing.T) {
		f := newFixture(t)
		f.folder(t, "Decks", nil)
		other := f.folder(t, "Cubes", nil)

		_, err := f.services.Folders.RenameFolder(ctx, other.ID, "Decks")
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("same name in another parent is allowed", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		f.folder(t, "Decks", &a.ID)
		other := f.folder(t, "Cubes", nil)

		_, err := f.services.Folders.RenameFolder(ctx, other.ID, "Decks")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.services.Folders.RenameFolder(ctx, missingFolder(t), "Decks")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMoveFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("moves", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		b := f.folder(t, "B", nil)

		moved, err := f.services.Folders.MoveFolder(ctx, b.ID, a.ID)
		require.NoError(t, err)
		require.NotNil(t, moved.Parent)
		assert.Equal(t, a.ID, *moved.Parent)

		children, err := f.services.Folders.GetFolderChildren(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, children.Folders, 1)
		assert.Equal(t, b.ID, children.Folders[0].ID)
	})

	t.Run("current parent writes nothing", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		before := f.folders.writes.Load()

		got, err := f.services.Folders.MoveFolder(ctx, a.ID, ids.RootFolderID())
		require.NoError(t, err)
		assert.Equal(t, a.UpdatedAt, got.UpdatedAt)
		assert.Equal(t, before, f.folders.writes.Load())
	})

	t.Run("missing target is checked first", func(t *testing.T) {
		f := newFixture(t)
		before := f.folders.writes.Load()

		// The folder being moved does not exist either.
		_, err := f.services.Folders.MoveFolder(ctx, missingFolder(t), missingFolder(t))
		assert.ErrorIs(t, err, domain.ErrTargetNotFound)
		assert.Equal(t, before, f.folders.writes.Load())
	})

	t.Run("into itself", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)

		_, err := f.services.Folders.MoveFolder(ctx, a.ID, a.ID)
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
	})

	t.Run("into a descendant", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		b := f.folder(t, "B", &a.ID)
		c := f.folder(t, "C", &b.ID)
		before := f.folders.writes.Load()

		_, err := f.services.Folders.MoveFolder(ctx, a.ID, c.ID)
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
		assert.Equal(t, before, f.folders.writes.Load())

		got, err := f.services.Folders.GetFolderMetadata(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, ids.IsRoot(*got.Parent))
	})

	t.Run("root", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)

		_, err := f.services.Folders.MoveFolder(ctx, ids.RootFolderID(), a.ID)
		assert.ErrorIs(t, err, domain.ErrRootFolder)
	})

	t.Run("name taken at destination", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		f.folder(t, "Decks", &a.ID)
		decks := f.folder(t, "Decks", nil)

		_, err := f.services.Folders.MoveFolder(ctx, decks.ID, a.ID)
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the subtree", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		b := f.folder(t, "B", &a.ID)
		keep := f.folder(t, "Keep", nil)
		project := f.project(t, "Modern", &b.ID)
		kept := f.project(t, "Legacy", &keep.ID)
		list := f.list(t, "Main", project.ID)
		item, err := f.services.ListItems.NewListItem(ctx, models.NewListItem{List: list.ID, CardCore: cardCore(t, "bolt")})
		require.NoError(t, err)

		require.NoError(t, f.services.Folders.DeleteFolder(ctx, a.ID))

		_, err = f.services.Folders.GetFolderMetadata(ctx, a.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.services.Folders.GetFolderMetadata(ctx, b.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.services.Projects.GetProject(ctx, project.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.services.Lists.GetList(ctx, list.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.services.ListItems.GetListItem(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.services.Projects.GetProject(ctx, kept.ID)
		assert.NoError(t, err)
		_, err = f.services.Folders.GetFolderMetadata(ctx, keep.ID)
		assert.NoError(t, err)
	})

	t.Run("root", func(t *testing.T) {
		f := newFixture(t)
		err := f.services.Folders.DeleteFolder(ctx, ids.RootFolderID())
		assert.ErrorIs(t, err, domain.ErrRootFolder)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		err := f.services.Folders.DeleteFolder(ctx, missingFolder(t))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		a := f.folder(t, "A", nil)
		project := f.project(t, "Modern", &a.ID)

		failing := &failingDelete{FolderRepository: f.store.Folders, id: a.ID}
		f.store.Folders = failing
		services := New(f.store, nil)

		err := services.Folders.DeleteFolder(ctx, a.ID)
		require.Error(t, err)

		_, err = services.Projects.GetProject(ctx, project.ID)
		assert.NoError(t, err)
	})
}

func TestGetFolderChildren(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.folder(t, "A", nil)
	f.folder(t, "zeta", &a.ID)
	f.folder(t, "alpha", &a.ID)
	f.project(t, "Modern", &a.ID)

	children, err := f.services.Folders.GetFolderChildren(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, children.Folders, 2)
	assert.Equal(t, "alpha", children.Folders[0].Name)
	assert.Equal(t, "zeta", children.Folders[1].Name)
	require.Len(t, children.Projects, 1)
	assert.Equal(t, "Modern", children.Projects[0].Name)

	_, err = f.services.Folders.GetFolderChildren(ctx, missingFolder(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderDepthLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// chain[i] sits i+1 levels below the root
	top := f.folder(t, "Top", nil)
	chain := []*models.Folder{top}
	for len(chain) < config.MaxFolderDepth {
		chain = append(chain, f.folder(t, "Level", &chain[len(chain)-1].ID))
	}
	deepest := chain[len(chain)-1]

	t.Run("create past the limit", func(t *testing.T) {
		_, err := f.services.Folders.NewFolder(ctx, models.NewFolder{Name: "Too deep", Parent: &deepest.ID})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.NotErrorIs(t, err, domain.ErrCycleDetected)
	})

	t.Run("move past the limit", func(t *testing.T) {
		solo := f.folder(t, "Solo", nil)
		_, err := f.services.Folders.MoveFolder(ctx, solo.ID, deepest.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.NotErrorIs(t, err, domain.ErrCycleDetected)

		// One level higher fits a single folder but not one with a child
		_, err = f.services.Folders.MoveFolder(ctx, solo.ID, chain[len(chain)-2].ID)
		require.NoError(t, err)

		nested := f.folder(t, "Nested", nil)
		f.folder(t, "Child", &nested.ID)
		_, err = f.services.Folders.MoveFolder(ctx, nested.ID, chain[len(chain)-3].ID)
		require.NoError(t, err)
		_, err = f.services.Folders.MoveFolder(ctx, nested.ID, chain[len(chain)-2].ID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delete the whole chain", func(t *testing.T) {
		require.NoError(t, f.services.Folders.DeleteFolder(ctx, top.ID))

		_, err := f.services.Folders.GetFolderMetadata(ctx, deepest.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		children, err := f.services.Folders.GetFolderChildren(ctx, ids.RootFolderID())
		require.NoError(t, err)
		for _, child := range children.Folders {
			assert.NotEqual(t, top.ID, child.ID)
		}
	})
}
