// Package library implements the collection services on top of a
// repository Store.
package library

import (
	"log/slog"

	repo "lotuslab/internal/domain/repositories/library"
	svc "lotuslab/internal/domain/services/library"
)

// Services groups every library service over one store.
type Services struct {
	Folders   svc.FolderService
	Projects  svc.ProjectService
	Lists     svc.ListService
	ListItems svc.ListItemService
	Tags      svc.TagService
}

// New wires the library services to store. A nil logger means slog.Default.
func New(store *repo.Store, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	validator := NewResourceValidator(store)
	return &Services{
		Folders:   NewFolderService(store, validator, logger),
		Projects:  NewProjectService(store, validator, logger),
		Lists:     NewListService(store, validator, logger),
		ListItems: NewListItemService(store, validator, logger),
		Tags:      NewTagService(store, logger),
	}
}
