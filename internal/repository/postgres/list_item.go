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

// PostgresListItemRepository implements the ListItemRepository interface
type PostgresListItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewListItemRepository creates a new list item repository
func NewListItemRepository(config *RepositoryConfig) repo.ListItemRepository {
	return &PostgresListItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves a list item by ID
func (r *PostgresListItemRepository) Get(ctx context.Context, id ids.ListItemID) (*models.ListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sqlutil.ListItemColumns, r.tables.ListItems)

	item, err := sqlutil.ScanListItem(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get list item", id.String(), err)
	}
	return item, nil
}

// ListByList lists the items of a list in insertion order
func (r *PostgresListItemRepository) ListByList(ctx context.Context, list ids.ListID) ([]models.ListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE list_id = $1
		ORDER BY created_at ASC, id COLLATE "C" ASC
	`, sqlutil.ListItemColumns, r.tables.ListItems)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, list.Key())
	if err != nil {
		return nil, domain.WrapDB("list items", err)
	}
	defer rows.Close()

	items := []models.ListItem{}
	for rows.Next() {
		item, err := sqlutil.ScanListItem(rows)
		if err != nil {
			return nil, domain.WrapDB("scan list item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapDB("iterate list items", err)
	}
	return items, nil
}

// Create adds an item to a list
func (r *PostgresListItemRepository) Create(ctx context.Context, new models.NewListItem) (*models.ListItem, error) {
	quantity := models.DefaultQuantity
	if new.Quantity != nil {
		quantity = *new.Quantity
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (list_id, card_core, selected_printing, quantity, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING %s
	`, r.tables.ListItems, sqlutil.ListItemColumns)

	now := time.Now().UTC()
	row := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		new.List.Key(),
		new.CardCore.Key(),
		sqlutil.OptionalKey(new.SelectedPrinting),
		quantity,
		new.Notes,
		now,
	)
	item, err := sqlutil.ScanListItem(row)
	if err != nil {
		return nil, classify("create list item", "list_item", err)
	}
	return item, nil
}

// Update applies a patch to a list item
func (r *PostgresListItemRepository) Update(ctx context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ListItemAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.tables.ListItems, sqlutil.ListItemColumns, sqlutil.Dollar, id.Key(), time.Now().UTC())
	item, err := sqlutil.ScanListItem(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update list item", id.String(), err)
	}
	return item, nil
}

// Delete removes an item from its list
func (r *PostgresListItemRepository) Delete(ctx context.Context, id ids.ListItemID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.ListItems)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id.Key())
	if err != nil {
		return classify("delete list item", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
