package handler

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/service/library"
)

// Argument objects. Field names are the wire names of the command
// arguments.

type idArgs[I any] struct {
	ID I `json:"id"`
}

func (a idArgs[I]) Validate() error {
	return validation.ValidateStruct(&a, validation.Field(&a.ID, ids.Required))
}

type patchArgs[I, P any] struct {
	ID    I `json:"id"`
	Patch P `json:"patch"`
}

func (a patchArgs[I, P]) Validate() error {
	return validation.ValidateStruct(&a, validation.Field(&a.ID, ids.Required))
}

type renameFolderArgs struct {
	ID   ids.FolderID `json:"id"`
	Name string       `json:"name"`
}

func (a renameFolderArgs) Validate() error {
	return validation.ValidateStruct(&a, validation.Field(&a.ID, ids.Required))
}

type moveFolderArgs struct {
	ID       ids.FolderID `json:"id"`
	TargetID ids.FolderID `json:"target_id"`
}

func (a moveFolderArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, ids.Required),
		validation.Field(&a.TargetID, ids.Required),
	)
}

type newFolderArgs struct {
	NewFolder models.NewFolder `json:"new_folder"`
}

type newProjectArgs struct {
	NewProject models.NewProject `json:"new_project"`
}

type newListArgs struct {
	NewList models.NewList `json:"new_list"`
}

type newListItemArgs struct {
	NewListItem models.NewListItem `json:"new_list_item"`
}

type newTagArgs struct {
	NewTag models.NewTag `json:"new_tag"`
}

type noArgs struct{}

// Commands returns the full command set over s.
func Commands(s *library.Services) []Command {
	cmds := []Command{}
	cmds = append(cmds, folderCommands(s)...)
	cmds = append(cmds, projectCommands(s)...)
	cmds = append(cmds, listCommands(s)...)
	cmds = append(cmds, listItemCommands(s)...)
	cmds = append(cmds, tagCommands(s)...)
	return cmds
}

func folderCommands(s *library.Services) []Command {
	return []Command{
		{
			Name: "get_folder_metadata",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.FolderID]) (*models.Folder, error) {
				return s.Folders.GetFolderMetadata(ctx, a.ID)
			}),
		},
		{
			Name: "get_folder_children",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.FolderID]) (*models.FolderChildren, error) {
				return s.Folders.GetFolderChildren(ctx, a.ID)
			}),
		},
		{
			Name:  "new_folder",
			Write: true,
			Handle: Handle(func(ctx context.Context, a newFolderArgs) (*models.Folder, error) {
				return s.Folders.NewFolder(ctx, a.NewFolder)
			}),
		},
		{
			Name:  "rename_folder",
			Write: true,
			Handle: Handle(func(ctx context.Context, a renameFolderArgs) (*models.Folder, error) {
				return s.Folders.RenameFolder(ctx, a.ID, a.Name)
			}),
		},
		{
			Name:  "move_folder",
			Write: true,
			Handle: Handle(func(ctx context.Context, a moveFolderArgs) (*models.Folder, error) {
				return s.Folders.MoveFolder(ctx, a.ID, a.TargetID)
			}),
		},
		{
			Name:  "delete_folder",
			Write: true,
			Handle: Exec(func(ctx context.Context, a idArgs[ids.FolderID]) error {
				return s.Folders.DeleteFolder(ctx, a.ID)
			}),
		},
	}
}

func projectCommands(s *library.Services) []Command {
	return []Command{
		{
			Name: "get_project",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.ProjectID]) (*models.Project, error) {
				return s.Projects.GetProject(ctx, a.ID)
			}),
		},
		{
			Name: "get_folder_projects",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.FolderID]) ([]models.Project, error) {
				return s.Projects.GetFolderProjects(ctx, a.ID)
			}),
		},
		{
			Name:  "new_project",
			Write: true,
			Handle: Handle(func(ctx context.Context, a newProjectArgs) (*models.Project, error) {
				return s.Projects.NewProject(ctx, a.NewProject)
			}),
		},
		{
			Name:  "update_project",
			Write: true,
			Handle: Handle(func(ctx context.Context, a patchArgs[ids.ProjectID, models.PatchProject]) (*models.Project, error) {
				return s.Projects.UpdateProject(ctx, a.ID, a.Patch)
			}),
		},
		{
			Name:  "delete_project",
			Write: true,
			Handle: Exec(func(ctx context.Context, a idArgs[ids.ProjectID]) error {
				return s.Projects.DeleteProject(ctx, a.ID)
			}),
		},
	}
}

func listCommands(s *library.Services) []Command {
	return []Command{
		{
			Name: "get_list",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.ListID]) (*models.List, error) {
				return s.Lists.GetList(ctx, a.ID)
			}),
		},
		{
			Name: "get_project_lists",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.ProjectID]) ([]models.List, error) {
				return s.Lists.GetProjectLists(ctx, a.ID)
			}),
		},
		{
			Name:  "new_list",
			Write: true,
			Handle: Handle(func(ctx context.Context, a newListArgs) (*models.List, error) {
				return s.Lists.NewList(ctx, a.NewList)
			}),
		},
		{
			Name:  "update_list",
			Write: true,
			Handle: Handle(func(ctx context.Context, a patchArgs[ids.ListID, models.PatchList]) (*models.List, error) {
				return s.Lists.UpdateList(ctx, a.ID, a.Patch)
			}),
		},
		{
			Name:  "delete_list",
			Write: true,
			Handle: Exec(func(ctx context.Context, a idArgs[ids.ListID]) error {
				return s.Lists.DeleteList(ctx, a.ID)
			}),
		},
	}
}

func listItemCommands(s *library.Services) []Command {
	return []Command{
		{
			Name: "get_list_item",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.ListItemID]) (*models.ListItem, error) {
				return s.ListItems.GetListItem(ctx, a.ID)
			}),
		},
		{
			Name: "get_list_items",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.ListID]) ([]models.ListItem, error) {
				return s.ListItems.GetListItems(ctx, a.ID)
			}),
		},
		{
			Name:  "new_list_item",
			Write: true,
			Handle: Handle(func(ctx context.Context, a newListItemArgs) (*models.ListItem, error) {
				return s.ListItems.NewListItem(ctx, a.NewListItem)
			}),
		},
		{
			Name:  "update_list_item",
			Write: true,
			Handle: Handle(func(ctx context.Context, a patchArgs[ids.ListItemID, models.PatchListItem]) (*models.ListItem, error) {
				return s.ListItems.UpdateListItem(ctx, a.ID, a.Patch)
			}),
		},
		{
			Name:  "delete_list_item",
			Write: true,
			Handle: Exec(func(ctx context.Context, a idArgs[ids.ListItemID]) error {
				return s.ListItems.DeleteListItem(ctx, a.ID)
			}),
		},
	}
}

func tagCommands(s *library.Services) []Command {
	return []Command{
		{
			Name: "get_tag",
			Handle: Handle(func(ctx context.Context, a idArgs[ids.TagID]) (*models.Tag, error) {
				return s.Tags.GetTag(ctx, a.ID)
			}),
		},
		{
			Name: "get_tags",
			Handle: Handle(func(ctx context.Context, _ noArgs) ([]models.Tag, error) {
				return s.Tags.GetTags(ctx)
			}),
		},
		{
			Name:  "new_tag",
			Write: true,
			Handle: Handle(func(ctx context.Context, a newTagArgs) (*models.Tag, error) {
				return s.Tags.NewTag(ctx, a.NewTag)
			}),
		},
		{
			Name:  "update_tag",
			Write: true,
			Handle: Handle(func(ctx context.Context, a patchArgs[ids.TagID, models.PatchTag]) (*models.Tag, error) {
				return s.Tags.UpdateTag(ctx, a.ID, a.Patch)
			}),
		},
		{
			Name:  "delete_tag",
			Write: true,
			Handle: Exec(func(ctx context.Context, a idArgs[ids.TagID]) error {
				return s.Tags.DeleteTag(ctx, a.ID)
			}),
		},
	}
}
