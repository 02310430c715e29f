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

// ListRepository is the SQLite ListRepository
type ListRepository struct {
	db *DB
}

var _ repo.ListRepository = (*ListRepository)(nil)

func (r *ListRepository) Get(ctx context.Context, id ids.ListID) (*models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ?
	`, sqlutil.ListColumns, r.db.Tables.Lists)

	list, err := sqlutil.ScanList(r.db.executor(ctx).QueryRowContext(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get list", id.String(), err)
	}
	return list, nil
}

func (r *ListRepository) ListByProject(ctx context.Context, project ids.ProjectID) ([]models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = ?
		ORDER BY name ASC, id ASC
	`, sqlutil.ListColumns, r.db.Tables.Lists)

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, project.Key())
	if err != nil {
		return nil, domain.WrapDB("list lists", err)
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		list, err := sqlutil.ScanList(rows)
		if err != nil {
			return nil, domain.WrapDB("scan list", err)
		}
		lists = append(lists, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapDB("iterate lists", err)
	}
	return lists, nil
}

func (r *ListRepository) Create(ctx context.Context, new models.NewList) (*models.List, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, project_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s
	`, r.db.Tables.Lists, sqlutil.ListColumns)

	now := time.Now().UTC()
	row := r.db.executor(ctx).QueryRowContext(ctx, query, ids.NewKey(), new.Name, new.Project.Key(), now, now)
	list, err := sqlutil.ScanList(row)
	if err != nil {
		return nil, classify("create list", "list", err)
	}
	return list, nil
}

func (r *ListRepository) Update(ctx context.Context, id ids.ListID, p models.PatchList) (*models.List, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ListAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.db.Tables.Lists, sqlutil.ListColumns, sqlutil.Question, id.Key(), time.Now().UTC())
	list, err := sqlutil.ScanList(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify("update list", id.String(), err)
	}
	return list, nil
}

func (r *ListRepository) Delete(ctx context.Context, id ids.ListID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.db.Tables.Lists)
	return r.db.deleteOne(ctx, query, "list", id.String(), id.Key())
}
