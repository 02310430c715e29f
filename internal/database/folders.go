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

// FolderRepository is the SQLite FolderRepository
type FolderRepository struct {
	db *DB
	tx *TransactionManager
}

var _ repo.FolderRepository = (*FolderRepository)(nil)

// Get retrieves a single folder by ID
func (r *FolderRepository) Get(ctx context.Context, id ids.FolderID) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ?
	`, sqlutil.FolderColumns, r.db.Tables.Folders)

	folder, err := sqlutil.ScanFolder(r.db.executor(ctx).QueryRowContext(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get folder", id.String(), err)
	}
	return folder, nil
}

// GetChildren retrieves the immediate child folders and projects of a folder
func (r *FolderRepository) GetChildren(ctx context.Context, id ids.FolderID) (*models.FolderChildren, error) {
	var children *models.FolderChildren
	err := r.tx.readSnapshot(ctx, func(ctx context.Context) error {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}

		folderQuery := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id = ?
			ORDER BY name ASC, id ASC
		`, sqlutil.FolderColumns, r.db.Tables.Folders)

		rows, err := r.db.executor(ctx).QueryContext(ctx, folderQuery, id.Key())
		if err != nil {
			return domain.WrapDB("list folder children", err)
		}
		folders := []models.Folder{}
		for rows.Next() {
			folder, err := sqlutil.ScanFolder(rows)
			if err != nil {
				rows.Close()
				return domain.WrapDB("scan folder", err)
			}
			folders = append(folders, *folder)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return domain.WrapDB("iterate folders", err)
		}

		projectQuery := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE folder_id = ?
			ORDER BY name ASC, id ASC
		`, sqlutil.ProjectColumns, r.db.Tables.Projects)

		projects, err := queryProjects(ctx, r.db.executor(ctx), projectQuery, id.Key())
		if err != nil {
			return err
		}

		children = &models.FolderChildren{Folders: folders, Projects: projects}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

// Create creates a new folder; a nil parent means root
func (r *FolderRepository) Create(ctx context.Context, new models.NewFolder) (*models.Folder, error) {
	parent := ids.RootFolderID()
	if new.Parent != nil {
		parent = *new.Parent
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s
	`, r.db.Tables.Folders, sqlutil.FolderColumns)

	now := time.Now().UTC()
	row := r.db.executor(ctx).QueryRowContext(ctx, query, ids.NewKey(), new.Name, parent.Key(), now, now)
	folder, err := sqlutil.ScanFolder(row)
	if err != nil {
		return nil, classify("create folder", "folder", err)
	}
	return folder, nil
}

// Update applies a patch to an existing folder (rename or move)
func (r *FolderRepository) Update(ctx context.Context, id ids.FolderID, p models.PatchFolder) (*models.Folder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.FolderAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.db.Tables.Folders, sqlutil.FolderColumns, sqlutil.Question, id.Key(), time.Now().UTC())
	folder, err := sqlutil.ScanFolder(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify("update folder", id.String(), err)
	}
	return folder, nil
}

// Delete deletes a single folder row
func (r *FolderRepository) Delete(ctx context.Context, id ids.FolderID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.db.Tables.Folders)
	return r.db.deleteOne(ctx, query, "folder", id.String(), id.Key())
}

// deleteOne runs a single-row DELETE and reports ErrNotFound when nothing matched.
func (db *DB) deleteOne(ctx context.Context, query, resource, ref, key string) error {
	result, err := db.executor(ctx).ExecContext(ctx, query, key)
	if err != nil {
		return classify("delete "+resource, ref, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.WrapDB("rows affected", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", resource, ref, domain.ErrNotFound)
	}
	return nil
}
