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

type listService struct {
	store     *repo.Store
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewListService creates a new list service
func NewListService(store *repo.Store, validator *ResourceValidator, logger *slog.Logger) svc.ListService {
	return &listService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

func (s *listService) GetList(ctx context.Context, id ids.ListID) (*models.List, error) {
	return s.store.Lists.Get(ctx, id)
}

// GetProjectLists fails with ErrNotFound for an unknown project rather than
// returning an empty slice.
func (s *listService) GetProjectLists(ctx context.Context, project ids.ProjectID) ([]models.List, error) {
	if _, err := s.store.Projects.Get(ctx, project); err != nil {
		return nil, err
	}
	return s.store.Lists.ListByProject(ctx, project)
}

func (s *listService) NewList(ctx context.Context, req models.NewList) (*models.List, error) {
	req.Name = normalizeName(req.Name)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, nameRules(config.MaxListNameLength)...),
		validation.Field(&req.Project, ids.Required),
	)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.validator.ValidateProject(ctx, req.Project); err != nil {
		return nil, err
	}

	list, err := s.store.Lists.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("list created",
		"id", list.ID.String(),
		"name", list.Name,
		"project", list.Project.String(),
	)
	return list, nil
}

func (s *listService) UpdateList(ctx context.Context, id ids.ListID, p models.PatchList) (*models.List, error) {
	if name, ok := p.Name.Get(); ok {
		p.Name = patch.Set(normalizeName(name))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.Each(nameRules(config.MaxListNameLength)...)),
	)); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, fmt.Errorf("update list %s: %w", id, domain.ErrNoOp)
	}

	if project, ok := p.Project.Get(); ok {
		if err := s.validator.ValidateProject(ctx, project); err != nil {
			return nil, err
		}
	}

	list, err := s.store.Lists.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("list updated",
		"id", id.String(),
		"name", p.Name.String(),
		"project", p.Project.String(),
	)
	return list, nil
}

func (s *listService) DeleteList(ctx context.Context, id ids.ListID) error {
	if err := s.store.Lists.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("list deleted", "id", id.String())
	return nil
}
