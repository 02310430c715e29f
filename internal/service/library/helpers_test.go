package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/memory"
)

// countingFolders records every folder write that reaches the store.
type countingFolders struct {
	repo.FolderRepository
	writes atomic.Int32
}

func (c *countingFolders) Create(ctx context.Context, new models.NewFolder) (*models.Folder, error) {
	c.writes.Add(1)
	return c.FolderRepository.Create(ctx, new)
}

func (c *countingFolders) Update(ctx context.Context, id ids.FolderID, p models.PatchFolder) (*models.Folder, error) {
	c.writes.Add(1)
	return c.FolderRepository.Update(ctx, id, p)
}

func (c *countingFolders) Delete(ctx context.Context, id ids.FolderID) error {
	c.writes.Add(1)
	return c.FolderRepository.Delete(ctx, id)
}

type fixture struct {
	store    *repo.Store
	folders  *countingFolders
	services *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(memory.New())
	folders := &countingFolders{FolderRepository: store.Folders}
	store.Folders = folders
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &fixture{
		store:    store,
		folders:  folders,
		services: New(store, logger),
	}
}

func (f *fixture) folder(t *testing.T, name string, parent *ids.FolderID) *models.Folder {
	t.Helper()
	folder, err := f.services.Folders.NewFolder(context.Background(), models.NewFolder{Name: name, Parent: parent})
	require.NoError(t, err)
	return folder
}

func (f *fixture) project(t *testing.T, name string, folder *ids.FolderID) *models.Project {
	t.Helper()
	project, err := f.services.Projects.NewProject(context.Background(), models.NewProject{Name: name, Folder: folder})
	require.NoError(t, err)
	return project
}

func (f *fixture) list(t *testing.T, name string, project ids.ProjectID) *models.List {
	t.Helper()
	list, err := f.services.Lists.NewList(context.Background(), models.NewList{Name: name, Project: project})
	require.NoError(t, err)
	return list
}

func cardCore(t *testing.T, key string) ids.CardCoreID {
	t.Helper()
	id, err := ids.CardCoreIDFromKey(key)
	require.NoError(t, err)
	return id
}

func missingFolder(t *testing.T) ids.FolderID {
	t.Helper()
	id, err := ids.ParseFolderID("folder:missing")
	require.NoError(t, err)
	return id
}

// failingDelete fails the delete of one folder after everything below it
// has been removed.
type failingDelete struct {
	repo.FolderRepository
	id ids.FolderID
}

func (f *failingDelete) Delete(ctx context.Context, id ids.FolderID) error {
	if id == f.id {
		return errors.New("disk full")
	}
	return f.FolderRepository.Delete(ctx, id)
}
