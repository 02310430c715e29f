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

type ProjectRepository struct {
	db *DB
}

var _ repo.ProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) Get(_ context.Context, id ids.ProjectID) (*models.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.state.projects[id.Key()]
	if !ok {
		return nil, notFound("project", id)
	}
	return &p, nil
}

func (r *ProjectRepository) ListByFolder(_ context.Context, folder ids.FolderID) ([]models.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	projects := []models.Project{}
	for _, p := range r.db.state.projects {
		if p.Folder == folder {
			projects = append(projects, p)
		}
	}
	sortProjects(projects)
	return projects, nil
}

func (r *ProjectRepository) Create(_ context.Context, new models.NewProject) (*models.Project, error) {
	folder := ids.RootFolderID()
	if new.Folder != nil {
		folder = *new.Folder
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.folders[folder.Key()]; !ok {
		return nil, missingRef("project", folder)
	}

	id, err := ids.ProjectIDFromKey(ids.NewKey())
	if err != nil {
		return nil, domain.WrapDB("create project", err)
	}
	now := r.db.now()
	p := models.Project{ID: id, Name: new.Name, Folder: folder, CreatedAt: now, UpdatedAt: now}
	r.db.state.projects[id.Key()] = p
	return &p, nil
}

func (r *ProjectRepository) Update(_ context.Context, id ids.ProjectID, patch models.PatchProject) (*models.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNoOp
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.state.projects[id.Key()]
	if !ok {
		return nil, notFound("project", id)
	}
	if name, ok := patch.Name.Get(); ok {
		p.Name = name
	}
	if folder, ok := patch.Folder.Get(); ok {
		if _, exists := r.db.state.folders[folder.Key()]; !exists {
			return nil, missingRef("project", folder)
		}
		p.Folder = folder
	}
	p.UpdatedAt = r.db.now()
	r.db.state.projects[id.Key()] = p
	return &p, nil
}

// Delete removes a project together with its lists and their items.
func (r *ProjectRepository) Delete(_ context.Context, id ids.ProjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.projects[id.Key()]; !ok {
		return notFound("project", id)
	}
	for key, l := range r.db.state.lists {
		if l.Project == id {
			r.db.deleteListLocked(key, l.ID)
		}
	}
	delete(r.db.state.projects, id.Key())
	return nil
}

func sortProjects(projects []models.Project) {
	slices.SortFunc(projects, func(a, b models.Project) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.Key(), b.ID.Key()))
	})
}
