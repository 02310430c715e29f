package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

type ListReader interface {
	Get(ctx context.Context, id ids.ListID) (*models.List, error)

	// ListByProject lists the lists of a project, ordered by name
	ListByProject(ctx context.Context, project ids.ProjectID) ([]models.List, error)
}

type ListWriter interface {
	Create(ctx context.Context, new models.NewList) (*models.List, error)
	Update(ctx context.Context, id ids.ListID, p models.PatchList) (*models.List, error)

	// Delete removes a list together with its items
	Delete(ctx context.Context, id ids.ListID) error
}

type ListRepository interface {
	ListReader
	ListWriter
}
