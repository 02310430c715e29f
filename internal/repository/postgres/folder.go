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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	tx     *TransactionManager
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		tx:     NewTransactionManager(config).(*TransactionManager),
	}
}

// Get retrieves a folder by ID
func (r *PostgresFolderRepository) Get(ctx context.Context, id ids.FolderID) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sqlutil.FolderColumns, r.tables.Folders)

	folder, err := sqlutil.ScanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get folder", id.String(), err)
	}
	return folder, nil
}

// GetChildren lists the direct child folders and projects of a folder
func (r *PostgresFolderRepository) GetChildren(ctx context.Context, id ids.FolderID) (*models.FolderChildren, error) {
	var children *models.FolderChildren
	err := r.tx.readSnapshot(ctx, func(ctx context.Context) error {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}

		executor := GetExecutor(ctx, r.pool)
		children = &models.FolderChildren{
			Folders:  []models.Folder{},
			Projects: []models.Project{},
		}

		folderQuery := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id = $1
			ORDER BY name COLLATE "C" ASC, id COLLATE "C" ASC
		`, sqlutil.FolderColumns, r.tables.Folders)

		rows, err := executor.Query(ctx, folderQuery, id.Key())
		if err != nil {
			return domain.WrapDB("list child folders", err)
		}
		for rows.Next() {
			folder, err := sqlutil.ScanFolder(rows)
			if err != nil {
				rows.Close()
				return domain.WrapDB("scan folder", err)
			}
			children.Folders = append(children.Folders, *folder)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return domain.WrapDB("iterate folders", err)
		}

		projectQuery := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE folder_id = $1
			ORDER BY name COLLATE "C" ASC, id COLLATE "C" ASC
		`, sqlutil.ProjectColumns, r.tables.Projects)

		projects, err := queryProjects(ctx, executor, projectQuery, id.Key())
		if err != nil {
			return err
		}
		children.Projects = projects
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

// Create inserts a folder; a nil parent means root
func (r *PostgresFolderRepository) Create(ctx context.Context, new models.NewFolder) (*models.Folder, error) {
	parent := ids.RootFolderID()
	if new.Parent != nil {
		parent = *new.Parent
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING %s
	`, r.tables.Folders, sqlutil.FolderColumns)

	now := time.Now().UTC()
	folder, err := sqlutil.ScanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, new.Name, parent.Key(), now))
	if err != nil {
		return nil, classify("create folder", "folder", err)
	}
	return folder, nil
}

// Update applies a patch to a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, id ids.FolderID, p models.PatchFolder) (*models.Folder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.FolderAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.tables.Folders, sqlutil.FolderColumns, sqlutil.Dollar, id.Key(), time.Now().UTC())
	folder, err := sqlutil.ScanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update folder", id.String(), err)
	}
	return folder, nil
}

// Delete deletes a single folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id ids.FolderID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id.Key())
	if err != nil {
		return classify("delete folder", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
