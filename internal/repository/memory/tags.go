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

type TagRepository struct {
	db *DB
}

var _ repo.TagRepository = (*TagRepository)(nil)

func (r *TagRepository) Get(_ context.Context, id ids.TagID) (*models.Tag, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.state.tags[id.Key()]
	if !ok {
		return nil, notFound("tag", id)
	}
	return copyTag(t), nil
}

func (r *TagRepository) List(_ context.Context) ([]models.Tag, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	tags := make([]models.Tag, 0, len(r.db.state.tags))
	for _, t := range r.db.state.tags {
		tags = append(tags, *copyTag(t))
	}
	slices.SortFunc(tags, func(a, b models.Tag) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.Key(), b.ID.Key()))
	})
	return tags, nil
}

func (r *TagRepository) Create(_ context.Context, new models.NewTag) (*models.Tag, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := ids.TagIDFromKey(ids.NewKey())
	if err != nil {
		return nil, domain.WrapDB("create tag", err)
	}
	now := r.db.now()
	t := models.Tag{ID: id, Name: new.Name, Color: clonePtr(new.Color), CreatedAt: now, UpdatedAt: now}
	r.db.state.tags[id.Key()] = t
	return copyTag(t), nil
}

func (r *TagRepository) Update(_ context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, domain.ErrNoOp
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.state.tags[id.Key()]
	if !ok {
		return nil, notFound("tag", id)
	}
	if name, ok := p.Name.Get(); ok {
		t.Name = name
	}
	t.Color = p.Color.Apply(t.Color)
	t.UpdatedAt = r.db.now()
	r.db.state.tags[id.Key()] = t
	return copyTag(t), nil
}

func (r *TagRepository) Delete(_ context.Context, id ids.TagID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.tags[id.Key()]; !ok {
		return notFound("tag", id)
	}
	delete(r.db.state.tags, id.Key())
	return nil
}

func copyTag(t models.Tag) *models.Tag {
	t.Color = clonePtr(t.Color)
	return &t
}
