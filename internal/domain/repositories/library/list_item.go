package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

type ListItemReader interface {
	Get(ctx context.Context, id ids.ListItemID) (*models.ListItem, error)

	// ListByList lists the items of a list, oldest first
	ListByList(ctx context.Context, list ids.ListID) ([]models.ListItem, error)
}

type ListItemWriter interface {
	Create(ctx context.Context, new models.NewListItem) (*models.ListItem, error)
	Update(ctx context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error)
	Delete(ctx context.Context, id ids.ListItemID) error
}

type ListItemRepository interface {
	ListItemReader
	ListItemWriter
}
