package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/sqlutil"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves a project by ID
func (r *PostgresProjectRepository) Get(ctx context.Context, id ids.ProjectID) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sqlutil.ProjectColumns, r.tables.Projects)

	project, err := sqlutil.ScanProject(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get project", id.String(), err)
	}
	return project, nil
}

// ListByFolder lists the projects directly inside a folder
func (r *PostgresProjectRepository) ListByFolder(ctx context.Context, folder ids.FolderID) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1
		ORDER BY name COLLATE "C" ASC, id COLLATE "C" ASC
	`, sqlutil.ProjectColumns, r.tables.Projects)

	return queryProjects(ctx, GetExecutor(ctx, r.pool), query, folder.Key())
}

// Create creates a new project; a nil folder means root
func (r *PostgresProjectRepository) Create(ctx context.Context, new models.NewProject) (*models.Project, error) {
	folder := ids.RootFolderID()
	if new.Folder != nil {
		folder = *new.Folder
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING %s
	`, r.tables.Projects, sqlutil.ProjectColumns)

	now := time.Now().UTC()
	project, err := sqlutil.ScanProject(GetExecutor(ctx, r.pool).QueryRow(ctx, query, new.Name, folder.Key(), now))
	if err != nil {
		return nil, classify("create project", "project", err)
	}
	return project, nil
}

// Update applies a patch to a project
func (r *PostgresProjectRepository) Update(ctx context.Context, id ids.ProjectID, p models.PatchProject) (*models.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ProjectAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.tables.Projects, sqlutil.ProjectColumns, sqlutil.Dollar, id.Key(), time.Now().UTC())
	project, err := sqlutil.ScanProject(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update project", id.String(), err)
	}
	return project, nil
}

// Delete deletes a project; its lists and items go with it
func (r *PostgresProjectRepository) Delete(ctx context.Context, id ids.ProjectID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id.Key())
	if err != nil {
		return classify("delete project", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func queryProjects(ctx context.Context, executor DBTX, query string, args ...any) ([]models.Project, error) {
	rows, err := executor.Query(ctx, query, args...)
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
