package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/storetest"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	db, err := Open(context.Background(), path, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) *repo.Store {
		db := openTestDB(t, filepath.Join(t.TempDir(), "library.db"))
		return NewStore(db, testLogger())
	})
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "library.db")

	db := openTestDB(t, path)
	store := NewStore(db, testLogger())
	folder, err := store.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening re-applies the schema without touching existing rows
	reopened := openTestDB(t, path)
	store = NewStore(reopened, testLogger())

	got, err := store.Folders.Get(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Decks", got.Name)
	assert.WithinDuration(t, folder.CreatedAt, got.CreatedAt, 0)

	root, err := store.Folders.Get(ctx, ids.RootFolderID())
	require.NoError(t, err)
	assert.Nil(t, root.Parent)
}

func TestTablePrefix(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "library.db"), "test_")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "test_folders", db.Tables.Folders)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM test_folders").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, filepath.Join(t.TempDir(), "library.db"))
	store := NewStore(db, testLogger())

	_, err := store.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
	require.NoError(t, err)

	require.NoError(t, db.DropTables(ctx))
	require.NoError(t, db.ApplySchema(ctx))

	children, err := store.Folders.GetChildren(ctx, ids.RootFolderID())
	require.NoError(t, err)
	assert.Empty(t, children.Folders)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	assert.Error(t, err)
}

func TestChildrenReadJoinsOpenTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "library.db")), testLogger())

	// The only connection is held by the outer transaction, so the children
	// read must run inside it to see the new folder at all.
	err := store.Tx.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := store.Folders.Create(ctx, models.NewFolder{Name: "Decks"})
		if err != nil {
			return err
		}
		children, err := store.Folders.GetChildren(ctx, ids.RootFolderID())
		if err != nil {
			return err
		}
		require.Len(t, children.Folders, 1)
		assert.Equal(t, folder.ID, children.Folders[0].ID)
		return nil
	})
	require.NoError(t, err)
}
