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

type ListRepository struct {
	db *DB
}

var _ repo.ListRepository = (*ListRepository)(nil)

func (r *ListRepository) Get(_ context.Context, id ids.ListID) (*models.List, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	l, ok := r.db.state.lists[id.Key()]
	if !ok {
		return nil, notFound("list", id)
	}
	return &l, nil
}

func (r *ListRepository) ListByProject(_ context.Context, project ids.ProjectID) ([]models.List, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	lists := []models.List{}
	for _, l := range r.db.state.lists {
		if l.Project == project {
			lists = append(lists, l)
		}
	}
	slices.SortFunc(lists, func(a, b models.List) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.Key(), b.ID.Key()))
	})
	return lists, nil
}

func (r *ListRepository) Create(_ context.Context, new models.NewList) (*models.List, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.projects[new.Project.Key()]; !ok {
		return nil, missingRef("list", new.Project)
	}

	id, err := ids.ListIDFromKey(ids.NewKey())
	if err != nil {
		return nil, domain.WrapDB("create list", err)
	}
	now := r.db.now()
	l := models.List{ID: id, Name: new.Name, Project: new.Project, CreatedAt: now, UpdatedAt: now}
	r.db.state.lists[id.Key()] = l
	return &l, nil
}

func (r *ListRepository) Update(_ context.Context, id ids.ListID, p models.PatchList) (*models.List, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, domain.ErrNoOp
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	l, ok := r.db.state.lists[id.Key()]
	if !ok {
		return nil, notFound("list", id)
	}
	if name, ok := p.Name.Get(); ok {
		l.Name = name
	}
	if project, ok := p.Project.Get(); ok {
		if _, exists := r.db.state.projects[project.Key()]; !exists {
			return nil, missingRef("list", project)
		}
		l.Project = project
	}
	l.UpdatedAt = r.db.now()
	r.db.state.lists[id.Key()] = l
	return &l, nil
}

func (r *ListRepository) Delete(_ context.Context, id ids.ListID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.lists[id.Key()]; !ok {
		return notFound("list", id)
	}
	r.db.deleteListLocked(id.Key(), id)
	return nil
}

// deleteListLocked removes a list and its items. Caller holds mu.
func (db *DB) deleteListLocked(key string, id ids.ListID) {
	for itemKey, item := range db.state.listItems {
		if item.List == id {
			delete(db.state.listItems, itemKey)
		}
	}
	delete(db.state.lists, key)
}
