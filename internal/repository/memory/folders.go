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

type FolderRepository struct {
	db *DB
}

var _ repo.FolderRepository = (*FolderRepository)(nil)

func (r *FolderRepository) Get(_ context.Context, id ids.FolderID) (*models.Folder, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	f, ok := r.db.state.folders[id.Key()]
	if !ok {
		return nil, notFound("folder", id)
	}
	return copyFolder(f), nil
}

func (r *FolderRepository) GetChildren(_ context.Context, id ids.FolderID) (*models.FolderChildren, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if _, ok := r.db.state.folders[id.Key()]; !ok {
		return nil, notFound("folder", id)
	}

	children := &models.FolderChildren{
		Folders:  []models.Folder{},
		Projects: []models.Project{},
	}
	for _, f := range r.db.state.folders {
		if f.Parent != nil && *f.Parent == id {
			children.Folders = append(children.Folders, *copyFolder(f))
		}
	}
	for _, p := range r.db.state.projects {
		if p.Folder == id {
			children.Projects = append(children.Projects, p)
		}
	}

	slices.SortFunc(children.Folders, func(a, b models.Folder) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.Key(), b.ID.Key()))
	})
	sortProjects(children.Projects)
	return children, nil
}

func (r *FolderRepository) Create(_ context.Context, new models.NewFolder) (*models.Folder, error) {
	parent := ids.RootFolderID()
	if new.Parent != nil {
		parent = *new.Parent
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.folders[parent.Key()]; !ok {
		return nil, missingRef("folder", parent)
	}

	id, err := ids.FolderIDFromKey(ids.NewKey())
	if err != nil {
		return nil, domain.WrapDB("create folder", err)
	}
	now := r.db.now()
	f := models.Folder{ID: id, Name: new.Name, Parent: &parent, CreatedAt: now, UpdatedAt: now}
	r.db.state.folders[id.Key()] = f
	return copyFolder(f), nil
}

func (r *FolderRepository) Update(_ context.Context, id ids.FolderID, p models.PatchFolder) (*models.Folder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, domain.ErrNoOp
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	f, ok := r.db.state.folders[id.Key()]
	if !ok {
		return nil, notFound("folder", id)
	}
	if name, ok := p.Name.Get(); ok {
		f.Name = name
	}
	if parent, ok := p.Parent.Get(); ok {
		if _, exists := r.db.state.folders[parent.Key()]; !exists {
			return nil, missingRef("folder", parent)
		}
		if f.IsRoot() {
			return nil, domain.ErrRootFolder
		}
		f.Parent = &parent
	}
	f.UpdatedAt = r.db.now()
	r.db.state.folders[id.Key()] = f
	return copyFolder(f), nil
}

// Delete removes a single folder. Like the SQL schema, a folder that still
// contains folders or projects can't be removed.
func (r *FolderRepository) Delete(_ context.Context, id ids.FolderID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.state.folders[id.Key()]; !ok {
		return notFound("folder", id)
	}
	for _, f := range r.db.state.folders {
		if f.Parent != nil && *f.Parent == id {
			return stillReferenced("folder", id, f.ID)
		}
	}
	for _, p := range r.db.state.projects {
		if p.Folder == id {
			return stillReferenced("folder", id, p.ID)
		}
	}
	delete(r.db.state.folders, id.Key())
	return nil
}

func copyFolder(f models.Folder) *models.Folder {
	f.Parent = clonePtr(f.Parent)
	return &f
}
