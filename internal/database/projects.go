package database

import (
	"context"
	"fmt"
	"time"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/sqlutil"
)

// ProjectRepository is the SQLite ProjectRepository
type ProjectRepository struct {
	db *DB
}

var _ repo.ProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) Get(ctx context.Context, id ids.ProjectID) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ?
	`, sqlutil.ProjectColumns, r.db.Tables.Projects)

	project, err := sqlutil.ScanProject(r.db.executor(ctx).QueryRowContext(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get project", id.String(), err)
	}
	return project, nil
}

func (r *ProjectRepository) ListByFolder(ctx context.Context, folder ids.FolderID) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = ?
		ORDER BY name ASC, id ASC
	`, sqlutil.ProjectColumns, r.db.Tables.Projects)

	return queryProjects(ctx, r.db.executor(ctx), query, folder.Key())
}

func (r *ProjectRepository) Create(ctx context.Context, new models.NewProject) (*models.Project, error) {
	folder := ids.RootFolderID()
	if new.Folder != nil {
		folder = *new.Folder
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s
	`, r.db.Tables.Projects, sqlutil.ProjectColumns)

	now := time.Now().UTC()
	row := r.db.executor(ctx).QueryRowContext(ctx, query, ids.NewKey(), new.Name, folder.Key(), now, now)
	project, err := sqlutil.ScanProject(row)
	if err != nil {
		return nil, classify("create project", "project", err)
	}
	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id ids.ProjectID, p models.PatchProject) (*models.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ProjectAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.db.Tables.Projects, sqlutil.ProjectColumns, sqlutil.Question, id.Key(), time.Now().UTC())
	project, err := sqlutil.ScanProject(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify("update project", id.String(), err)
	}
	return project, nil
}

// Delete deletes a project; lists and items cascade
func (r *ProjectRepository) Delete(ctx context.Context, id ids.ProjectID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.db.Tables.Projects)
	return r.db.deleteOne(ctx, query, "project", id.String(), id.Key())
}

func queryProjects(ctx context.Context, executor DBTX, query string, args ...any) ([]models.Project, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapDB("list projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := sqlutil.ScanProject(rows)
		if err != nil {
			return nil, domain.WrapDB("scan project", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapDB("iterate projects", err)
	}
	return projects, nil
}
