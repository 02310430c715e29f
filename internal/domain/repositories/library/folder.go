package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

// FolderReader defines read access to folders
type FolderReader interface {
	// Get retrieves a folder by ID
	Get(ctx context.Context, id ids.FolderID) (*models.Folder, error)

	// GetChildren returns the folders and projects directly inside a folder,
	// read from a single snapshot
	GetChildren(ctx context.Context, id ids.FolderID) (*models.FolderChildren, error)
}

// FolderWriter defines write access to folders
type FolderWriter interface {
	// Create inserts a folder with a generated key; a nil parent means root
	Create(ctx context.Context, new models.NewFolder) (*models.Folder, error)

	// Update applies a patch and returns the updated folder.
	// An all-Ignore patch fails with domain.ErrNoOp without touching the store.
	Update(ctx context.Context, id ids.FolderID, p models.PatchFolder) (*models.Folder, error)

	// Delete removes a single folder row
	Delete(ctx context.Context, id ids.FolderID) error
}

// FolderRepository combines read and write access
type FolderRepository interface {
	FolderReader
	FolderWriter
}
