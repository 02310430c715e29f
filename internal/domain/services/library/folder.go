package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

// FolderService handles folder business logic
type FolderService interface {
	// GetFolderMetadata retrieves a single folder
	GetFolderMetadata(ctx context.Context, id ids.FolderID) (*models.Folder, error)

	// GetFolderChildren lists the folders and projects directly inside a folder
	GetFolderChildren(ctx context.Context, id ids.FolderID) (*models.FolderChildren, error)

	// NewFolder creates a folder; a nil parent means root
	NewFolder(ctx context.Context, req models.NewFolder) (*models.Folder, error)

	// RenameFolder renames a folder. Renaming to the current name returns the
	// folder unchanged without writing.
	RenameFolder(ctx context.Context, id ids.FolderID, name string) (*models.Folder, error)

	// MoveFolder reparents a folder. Moving to the current parent returns the
	// folder unchanged without writing.
	MoveFolder(ctx context.Context, id, target ids.FolderID) (*models.Folder, error)

	// DeleteFolder deletes a folder with every folder, project, list and list
	// item below it
	DeleteFolder(ctx context.Context, id ids.FolderID) error
}
