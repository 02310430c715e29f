package library

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lotuslab/internal/config"
	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
	repo "lotuslab/internal/domain/repositories/library"
	svc "lotuslab/internal/domain/services/library"
)

type folderService struct {
	store     *repo.Store
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(store *repo.Store, validator *ResourceValidator, logger *slog.Logger) svc.FolderService {
	return &folderService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

func (s *folderService) GetFolderMetadata(ctx context.Context, id ids.FolderID) (*models.Folder, error) {
	return s.store.Folders.Get(ctx, id)
}

func (s *folderService) GetFolderChildren(ctx context.Context, id ids.FolderID) (*models.FolderChildren, error) {
	return s.store.Folders.GetChildren(ctx, id)
}

// NewFolder creates a folder under an existing parent
func (s *folderService) NewFolder(ctx context.Context, req models.NewFolder) (*models.Folder, error) {
	req.Name = normalizeName(req.Name)
	if err := validation.Validate(req.Name, nameRules(config.MaxFolderNameLength)...); err != nil {
		return nil, invalid(fmt.Errorf("name: %w", err))
	}

	parent := ids.RootFolderID()
	if req.Parent != nil {
		parent = *req.Parent
	}
	req.Parent = &parent

	var folder *models.Folder
	err := s.store.Tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateFolder(ctx, parent); err != nil {
			return err
		}
		path, err := s.ancestry(ctx, parent)
		if err != nil {
			return err
		}
		if err := checkDepth(len(path)+1, 0); err != nil {
			return err
		}
		if err := s.checkSiblingName(ctx, parent, req.Name, nil); err != nil {
			return err
		}

		folder, err = s.store.Folders.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID.String(),
		"name", folder.Name,
		"parent", parent.String(),
	)
	return folder, nil
}

// RenameFolder renames a folder, keeping sibling names unique
func (s *folderService) RenameFolder(ctx context.Context, id ids.FolderID, name string) (*models.Folder, error) {
	name = normalizeName(name)
	if err := validation.Validate(name, nameRules(config.MaxFolderNameLength)...); err != nil {
		return nil, invalid(fmt.Errorf("name: %w", err))
	}

	folder, err := s.store.Folders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Same name: nothing to write
	if folder.Name == name {
		return folder, nil
	}

	if folder.Parent == nil {
		return nil, fmt.Errorf("rename %s: %w", id, domain.ErrRootFolder)
	}

	if err := s.checkSiblingName(ctx, *folder.Parent, name, &folder.ID); err != nil {
		return nil, err
	}

	updated, err := s.store.Folders.Update(ctx, id, models.PatchFolder{Name: patch.Set(name)})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", id.String(),
		"old_name", folder.Name,
		"name", updated.Name,
	)
	return updated, nil
}

// MoveFolder moves a folder under target
func (s *folderService) MoveFolder(ctx context.Context, id, target ids.FolderID) (*models.Folder, error) {
	// The destination is checked before anything else
	if err := s.validator.ValidateFolder(ctx, target); err != nil {
		return nil, err
	}

	folder, err := s.store.Folders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Already there: nothing to write
	if folder.Parent != nil && *folder.Parent == target {
		return folder, nil
	}

	if folder.Parent == nil {
		return nil, fmt.Errorf("move %s: %w", id, domain.ErrRootFolder)
	}

	depth, err := s.validateNoCircularReference(ctx, id, target)
	if err != nil {
		return nil, err
	}
	height, err := s.subtreeHeight(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkDepth(depth+1, height); err != nil {
		return nil, err
	}

	if err := s.checkSiblingName(ctx, target, folder.Name, &folder.ID); err != nil {
		return nil, err
	}

	updated, err := s.store.Folders.Update(ctx, id, models.PatchFolder{Parent: patch.Set(target)})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved",
		"id", id.String(),
		"from", folder.Parent.String(),
		"to", target.String(),
	)
	return updated, nil
}

// DeleteFolder deletes a folder and everything below it in one transaction
func (s *folderService) DeleteFolder(ctx context.Context, id ids.FolderID) error {
	if ids.IsRoot(id) {
		return fmt.Errorf("delete %s: %w", id, domain.ErrRootFolder)
	}

	var folder *models.Folder
	err := s.store.Tx.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.store.Folders.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := s.deleteDescendants(ctx, id, map[ids.FolderID]bool{id: true}); err != nil {
			return err
		}
		return s.store.Folders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id.String(),
		"name", folder.Name,
	)
	return nil
}

// deleteDescendants deletes the projects of a folder and, depth first, its
// child folders. Lists and list items go with their project. seen holds the
// folders already on the walk; meeting one again means the stored tree loops.
func (s *folderService) deleteDescendants(ctx context.Context, id ids.FolderID, seen map[ids.FolderID]bool) error {
	children, err := s.store.Folders.GetChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list children of %s: %w", id, err)
	}

	for _, project := range children.Projects {
		if err := s.store.Projects.Delete(ctx, project.ID); err != nil {
			return fmt.Errorf("failed to delete project %q: %w", project.Name, err)
		}
		s.logger.Debug("deleted project", "id", project.ID.String(), "name", project.Name)
	}

	for _, child := range children.Folders {
		if seen[child.ID] {
			return fmt.Errorf("%s is its own descendant: %w", child.ID, domain.ErrCycleDetected)
		}
		seen[child.ID] = true

		if err := s.deleteDescendants(ctx, child.ID, seen); err != nil {
			return err
		}
		if err := s.store.Folders.Delete(ctx, child.ID); err != nil {
			return fmt.Errorf("failed to delete child folder %q: %w", child.Name, err)
		}
		s.logger.Debug("deleted child folder", "id", child.ID.String(), "name", child.Name)
	}

	return nil
}

// checkSiblingName fails with a ConflictError when a folder under parent,
// other than self, already has name.
func (s *folderService) checkSiblingName(ctx context.Context, parent ids.FolderID, name string, self *ids.FolderID) error {
	children, err := s.store.Folders.GetChildren(ctx, parent)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range children.Folders {
		if self != nil && sibling.ID == *self {
			continue
		}
		if sibling.Name == name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   sibling.ID.String(),
			}
		}
	}
	return nil
}

// validateNoCircularReference fails when target is id or lies below it, and
// otherwise returns the depth of target.
func (s *folderService) validateNoCircularReference(ctx context.Context, id, target ids.FolderID) (int, error) {
	path, err := s.ancestry(ctx, target)
	if err != nil {
		return 0, err
	}
	if target == id || slices.Contains(path, id) {
		return 0, fmt.Errorf("cannot move %s into itself or its descendant %s: %w", id, target, domain.ErrCycleDetected)
	}
	return len(path), nil
}

// ancestry returns the folders above id, nearest first, ending at the root.
// Its length is the depth of id. A walk that does not reach the root within
// MaxFolderDepth steps, or that revisits a folder, is reported rather than
// followed.
func (s *folderService) ancestry(ctx context.Context, id ids.FolderID) ([]ids.FolderID, error) {
	var path []ids.FolderID
	current := id
	for {
		folder, err := s.store.Folders.Get(ctx, current)
		if err != nil {
			return nil, err
		}
		if folder.Parent == nil {
			return path, nil
		}

		current = *folder.Parent
		if current == id || slices.Contains(path, current) {
			return nil, fmt.Errorf("ancestors of %s loop at %s: %w", id, current, domain.ErrCycleDetected)
		}
		path = append(path, current)
		if len(path) > config.MaxFolderDepth {
			return nil, fmt.Errorf("%w: %s is more than %d levels deep", domain.ErrInvalidInput, id, config.MaxFolderDepth)
		}
	}
}

// subtreeHeight returns how many levels of folders lie below id; 0 for a
// folder without subfolders. The walk stops once it is past MaxFolderDepth.
func (s *folderService) subtreeHeight(ctx context.Context, id ids.FolderID) (int, error) {
	return s.heightBelow(ctx, id, 0)
}

func (s *folderService) heightBelow(ctx context.Context, id ids.FolderID, level int) (int, error) {
	if level > config.MaxFolderDepth {
		return 0, nil
	}
	children, err := s.store.Folders.GetChildren(ctx, id)
	if err != nil {
		return 0, err
	}

	height := 0
	for _, child := range children.Folders {
		h, err := s.heightBelow(ctx, child.ID, level+1)
		if err != nil {
			return 0, err
		}
		height = max(height, h+1)
	}
	return height, nil
}

// checkDepth fails when a folder placed at depth, with height levels of
// folders below it, would put any folder deeper than MaxFolderDepth.
func checkDepth(depth, height int) error {
	if depth+height > config.MaxFolderDepth {
		return fmt.Errorf("%w: folders can be nested at most %d levels deep", domain.ErrInvalidInput, config.MaxFolderDepth)
	}
	return nil
}
