package memory

import (
	"cmp"
	"context"
	"slices"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
)

type ListItemRepository struct {
	db *DB
}

var _ repo.ListItemRepository = (*ListItemRepository)(nil)

func (r *ListItemRepository) Get(_ context.Context, id ids.ListItemID) (*models.ListItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.state.listItems[id.Key()]
	if !ok {
		return nil, notFound("list item", id)
	}
	return copyListItem(item), nil
}

// ListByList returns the items of a list in insertion order. Keys are
// time-ordered, so they break ties between equal timestamps.
func (r *ListItemRepository) ListByList(_ context.Context, list ids.ListID) ([]models.ListItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []models.ListItem{}
	for _, item := range r.db.state.listItems {
		if item.List == list {
			items = append(items, *copyListItem(item))
		}
	}
	slices.SortFunc(items, func(a, b models.ListItem) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID.Key(), b.ID.Key()))
	})
	return items, nil
}

func (r *ListItemRepository) Create(_ context.Context, new models.NewListItem) (*models.ListItem, error) {
	quantity := models.DefaultQuantity
	if new.Quantity != nil {
		quantity = *new.Quantity
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.lists[new.List.Key()]; !ok {
		return nil, missingRef("list item", new.List)
	}

	id, err := ids.ListItemIDFromKey(ids.NewKey())
	if err != nil {
		return nil, domain.WrapDB("create list item", err)
	}
	now := r.db.now()
	item := models.ListItem{
		ID:               id,
		List:             new.List,
		CardCore:         new.CardCore,
		SelectedPrinting: clonePtr(new.SelectedPrinting),
		Quantity:         quantity,
		Notes:            clonePtr(new.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.db.state.listItems[id.Key()] = item
	return copyListItem(item), nil
}

func (r *ListItemRepository) Update(_ context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, domain.ErrNoOp
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.state.listItems[id.Key()]
	if !ok {
		return nil, notFound("list item", id)
	}
	item.SelectedPrinting = p.SelectedPrinting.Apply(item.SelectedPrinting)
	if quantity, ok := p.Quantity.Get(); ok {
		item.Quantity = quantity
	}
	item.Notes = p.Notes.Apply(item.Notes)
	item.UpdatedAt = r.db.now()
	r.db.state.listItems[id.Key()] = item
	return copyListItem(item), nil
}

func (r *ListItemRepository) Delete(_ context.Context, id ids.ListItemID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.listItems[id.Key()]; !ok {
		return notFound("list item", id)
	}
	delete(r.db.state.listItems, id.Key())
	return nil
}

func copyListItem(item models.ListItem) *models.ListItem {
	item.SelectedPrinting = clonePtr(item.SelectedPrinting)
	item.Notes = clonePtr(item.Notes)
	return &item
}
