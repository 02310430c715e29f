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

var (
	quantityRules = []validation.Rule{validation.By(quantityInRange)}
	notesRules    = []validation.Rule{validation.RuneLength(0, config.MaxNotesLength)}
)

// quantityInRange bounds a quantity. validation.Min skips zero values, so
// the lower bound is checked here.
func quantityInRange(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	q, ok := v.(int)
	if !ok {
		return nil
	}
	if q < 1 || q > config.MaxListItemQuantity {
		return fmt.Errorf("must be between 1 and %d", config.MaxListItemQuantity)
	}
	return nil
}

type listItemService struct {
	store     *repo.Store
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewListItemService creates a new list item service
func NewListItemService(store *repo.Store, validator *ResourceValidator, logger *slog.Logger) svc.ListItemService {
	return &listItemService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

func (s *listItemService) GetListItem(ctx context.Context, id ids.ListItemID) (*models.ListItem, error) {
	return s.store.ListItems.Get(ctx, id)
}

func (s *listItemService) GetListItems(ctx context.Context, list ids.ListID) ([]models.ListItem, error) {
	if _, err := s.store.Lists.Get(ctx, list); err != nil {
		return nil, err
	}
	return s.store.ListItems.ListByList(ctx, list)
}

func (s *listItemService) NewListItem(ctx context.Context, req models.NewListItem) (*models.ListItem, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.List, ids.Required),
		validation.Field(&req.CardCore, ids.Required),
		validation.Field(&req.Quantity, quantityRules...),
		validation.Field(&req.Notes, notesRules...),
	)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.validator.ValidateList(ctx, req.List); err != nil {
		return nil, err
	}

	item, err := s.store.ListItems.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("list item added",
		"id", item.ID.String(),
		"list", item.List.String(),
		"card_core", item.CardCore.String(),
		"quantity", item.Quantity,
	)
	return item, nil
}

func (s *listItemService) UpdateListItem(ctx context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Quantity, patch.Each(quantityRules...)),
		validation.Field(&p.Notes, patch.Each(notesRules...)),
	)); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, fmt.Errorf("update list item %s: %w", id, domain.ErrNoOp)
	}

	item, err := s.store.ListItems.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("list item updated",
		"id", id.String(),
		"quantity", p.Quantity.String(),
		"selected_printing", p.SelectedPrinting.String(),
	)
	return item, nil
}

func (s *listItemService) DeleteListItem(ctx context.Context, id ids.ListItemID) error {
	if err := s.store.ListItems.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("list item removed", "id", id.String())
	return nil
}
