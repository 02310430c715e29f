package library

import (
	"context"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

// ProjectService handles project business logic
type ProjectService interface {
	GetProject(ctx context.Context, id ids.ProjectID) (*models.Project, error)
	GetFolderProjects(ctx context.Context, folder ids.FolderID) ([]models.Project, error)
	NewProject(ctx context.Context, req models.NewProject) (*models.Project, error)
	// UpdateProject renames and/or moves a project
	UpdateProject(ctx context.Context, id ids.ProjectID, p models.PatchProject) (*models.Project, error)
	// DeleteProject deletes a project with its lists and their items
	DeleteProject(ctx context.Context, id ids.ProjectID) error
}

// ListService handles list business logic
type ListService interface {
	GetList(ctx context.Context, id ids.ListID) (*models.List, error)
	GetProjectLists(ctx context.Context, project ids.ProjectID) ([]models.List, error)
	NewList(ctx context.Context, req models.NewList) (*models.List, error)
	UpdateList(ctx context.Context, id ids.ListID, p models.PatchList) (*models.List, error)
	DeleteList(ctx context.Context, id ids.ListID) error
}

// ListItemService handles the entries of a list
type ListItemService interface {
	GetListItem(ctx context.Context, id ids.ListItemID) (*models.ListItem, error)
	GetListItems(ctx context.Context, list ids.ListID) ([]models.ListItem, error)
	NewListItem(ctx context.Context, req models.NewListItem) (*models.ListItem, error)
	UpdateListItem(ctx context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error)
	DeleteListItem(ctx context.Context, id ids.ListItemID) error
}

// TagService handles tags
type TagService interface {
	GetTag(ctx context.Context, id ids.TagID) (*models.Tag, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
	NewTag(ctx context.Context, req models.NewTag) (*models.Tag, error)
	UpdateTag(ctx context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error)
	DeleteTag(ctx context.Context, id ids.TagID) error
}
