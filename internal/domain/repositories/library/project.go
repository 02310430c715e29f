package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

// ProjectReader defines read access to projects
type ProjectReader interface {
	// Get retrieves a project by ID
	Get(ctx context.Context, id ids.ProjectID) (*models.Project, error)

	// ListByFolder lists projects directly inside a folder, ordered by name
	ListByFolder(ctx context.Context, folder ids.FolderID) ([]models.Project, error)
}

// ProjectWriter defines write access to projects
type ProjectWriter interface {
	// Create inserts a project; a nil folder means root
	Create(ctx context.Context, new models.NewProject) (*models.Project, error)

	// Update applies a patch and returns the updated project
	Update(ctx context.Context, id ids.ProjectID, p models.PatchProject) (*models.Project, error)

	// Delete removes a project together with its lists and their items
	Delete(ctx context.Context, id ids.ProjectID) error
}

// ProjectRepository combines read and write access
type ProjectRepository interface {
	ProjectReader
	ProjectWriter
}
