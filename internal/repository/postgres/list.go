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

// PostgresListRepository implements the ListRepository interface
type PostgresListRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewListRepository creates a new list repository
func NewListRepository(config *RepositoryConfig) repo.ListRepository {
	return &PostgresListRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves a list by ID
func (r *PostgresListRepository) Get(ctx context.Context, id ids.ListID) (*models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sqlutil.ListColumns, r.tables.Lists)

	list, err := sqlutil.ScanList(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get list", id.String(), err)
	}
	return list, nil
}

// ListByProject lists the lists of a project
func (r *PostgresListRepository) ListByProject(ctx context.Context, project ids.ProjectID) ([]models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY name COLLATE "C" ASC, id COLLATE "C" ASC
	`, sqlutil.ListColumns, r.tables.Lists)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, project.Key())
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

// Create creates a new list
func (r *PostgresListRepository) Create(ctx context.Context, new models.NewList) (*models.List, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING %s
	`, r.tables.Lists, sqlutil.ListColumns)

	now := time.Now().UTC()
	list, err := sqlutil.ScanList(GetExecutor(ctx, r.pool).QueryRow(ctx, query, new.Name, new.Project.Key(), now))
	if err != nil {
		return nil, classify("create list", "list", err)
	}
	return list, nil
}

// Update applies a patch to a list
func (r *PostgresListRepository) Update(ctx context.Context, id ids.ListID, p models.PatchList) (*models.List, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ListAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.tables.Lists, sqlutil.ListColumns, sqlutil.Dollar, id.Key(), time.Now().UTC())
	list, err := sqlutil.ScanList(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update list", id.String(), err)
	}
	return list, nil
}

// Delete deletes a list and its items
func (r *PostgresListRepository) Delete(ctx context.Context, id ids.ListID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Lists)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id.Key())
	if err != nil {
		return classify("delete list", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
