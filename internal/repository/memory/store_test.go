package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) *repo.Store {
		return NewStore(New())
	})
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(New())

	folder, err := store.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
	require.NoError(t, err)

	// Mutating a returned value must not reach the store
	folder.Name = "changed"
	*folder.Parent = folder.ID

	got, err := store.Folders.Get(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Decks", got.Name)
	assert.True(t, ids.IsRoot(*got.Parent))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	db := New()
	store := NewStore(db)

	_, err := store.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
	require.NoError(t, err)

	db.Reset()

	children, err := store.Folders.GetChildren(ctx, ids.RootFolderID())
	require.NoError(t, err)
	assert.Empty(t, children.Folders)
}
