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

type tagService struct {
	store  *repo.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(store *repo.Store, logger *slog.Logger) svc.TagService {
	return &tagService{store: store, logger: logger}
}

func (s *tagService) GetTag(ctx context.Context, id ids.TagID) (*models.Tag, error) {
	return s.store.Tags.Get(ctx, id)
}

func (s *tagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	return s.store.Tags.List(ctx)
}

func (s *tagService) NewTag(ctx context.Context, req models.NewTag) (*models.Tag, error) {
	req.Name = normalizeName(req.Name)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, nameRules(config.MaxTagNameLength)...),
		validation.Field(&req.Color, colorRules...),
	)
	if err != nil {
		return nil, invalid(err)
	}

	tag, err := s.store.Tags.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID.String(), "name", tag.Name)
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error) {
	if name, ok := p.Name.Get(); ok {
		p.Name = patch.Set(normalizeName(name))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.Each(nameRules(config.MaxTagNameLength)...)),
		validation.Field(&p.Color, patch.Each(colorRules...)),
	)); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, fmt.Errorf("update tag %s: %w", id, domain.ErrNoOp)
	}

	tag, err := s.store.Tags.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", id.String(), "name", p.Name.String(), "color", p.Color.String())
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id ids.TagID) error {
	if err := s.store.Tags.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", id.String())
	return nil
}
