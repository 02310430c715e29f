package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

type TagReader interface {
	Get(ctx context.Context, id ids.TagID) (*models.Tag, error)

	// List returns every tag ordered by name
	List(ctx context.Context) ([]models.Tag, error)
}

type TagWriter interface {
	Create(ctx context.Context, new models.NewTag) (*models.Tag, error)
	Update(ctx context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error)
	Delete(ctx context.Context, id ids.TagID) error
}

type TagRepository interface {
	TagReader
	TagWriter
}
