package library

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lotuslab/internal/config"
	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/patch"
	repo "lotuslab/internal/domain/repositories/library"
	svc "lotuslab/internal/domain/services/library"
)

type projectService struct {
	store     *repo.Store
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(store *repo.Store, validator *ResourceValidator, logger *slog.Logger) svc.ProjectService {
	return &projectService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

func (s *projectService) GetProject(ctx context.Context, id ids.ProjectID) (*models.Project, error) {
	return s.store.Projects.Get(ctx, id)
}

// GetFolderProjects lists the projects directly inside a folder. An unknown
// folder is ErrNotFound.
func (s *projectService) GetFolderProjects(ctx context.Context, folder ids.FolderID) ([]models.Project, error) {
	if _, err := s.store.Folders.Get(ctx, folder); err != nil {
		return nil, err
	}
	return s.store.Projects.ListByFolder(ctx, folder)
}

func (s *projectService) NewProject(ctx context.Context, req models.NewProject) (*models.Project, error) {
	req.Name = normalizeName(req.Name)
	if err := validation.Validate(req.Name, nameRules(config.MaxProjectNameLength)...); err != nil {
		return nil, invalid(fmt.Errorf("name: %w", err))
	}

	folder := ids.RootFolderID()
	if req.Folder != nil {
		folder = *req.Folder
	}
	req.Folder = &folder

	if err := s.validator.ValidateFolder(ctx, folder); err != nil {
		return nil, err
	}

	project, err := s.store.Projects.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID.String(),
		"name", project.Name,
		"folder", folder.String(),
	)
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id ids.ProjectID, p models.PatchProject) (*models.Project, error) {
	if name, ok := p.Name.Get(); ok {
		p.Name = patch.Set(normalizeName(name))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.Each(nameRules(config.MaxProjectNameLength)...)),
	)); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, fmt.Errorf("update project %s: %w", id, domain.ErrNoOp)
	}

	if folder, ok := p.Folder.Get(); ok {
		if err := s.validator.ValidateFolder(ctx, folder); err != nil {
			return nil, err
		}
	}

	project, err := s.store.Projects.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", id.String(),
		"name", p.Name.String(),
		"folder", p.Folder.String(),
	)
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id ids.ProjectID) error {
	if err := s.store.Projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id.String())
	return nil
}
