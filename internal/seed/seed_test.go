package seed

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	"lotuslab/internal/repository/memory"
	"lotuslab/internal/service/library"
)

func newSeeder(t *testing.T) (*Seeder, *library.Services) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	services := library.New(memory.NewStore(memory.New()), logger)
	return NewSeeder(services, logger), services
}

func TestSeedDefault(t *testing.T) {
	ctx := context.Background()
	seeder, services := newSeeder(t)

	tree, err := Default()
	require.NoError(t, err)

	stats, err := seeder.Seed(ctx, tree)
	require.NoError(t, err)
	assert.Equal(t, Stats{Folders: 4, Projects: 3, Lists: 5, ListItems: 7, Tags: 3}, stats)

	root, err := services.Folders.GetFolderChildren(ctx, ids.RootFolderID())
	require.NoError(t, err)
	require.Len(t, root.Folders, 2)
	assert.Equal(t, "Constructed", root.Folders[0].Name)
	assert.Equal(t, "Cube", root.Folders[1].Name)
	require.Len(t, root.Projects, 1)
	assert.Equal(t, "Trade Binder", root.Projects[0].Name)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("folders:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	tree, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tree.Folders)
}

func TestSeedStopsOnInvalidData(t *testing.T) {
	seeder, _ := newSeeder(t)

	tree, err := Parse(strings.NewReader(`
folders:
  - name: A
  - name: A
`))
	require.NoError(t, err)

	stats, err := seeder.Seed(context.Background(), tree)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Equal(t, 1, stats.Folders)
}
