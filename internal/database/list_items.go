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

// ListItemRepository is the SQLite ListItemRepository
type ListItemRepository struct {
	db *DB
}

var _ repo.ListItemRepository = (*ListItemRepository)(nil)

func (r *ListItemRepository) Get(ctx context.Context, id ids.ListItemID) (*models.ListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ?
	`, sqlutil.ListItemColumns, r.db.Tables.ListItems)

	item, err := sqlutil.ScanListItem(r.db.executor(ctx).QueryRowContext(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get list item", id.String(), err)
	}
	return item, nil
}

// ListByList returns the items of a list in insertion order
func (r *ListItemRepository) ListByList(ctx context.Context, list ids.ListID) ([]models.ListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE list_id = ?
		ORDER BY created_at ASC, id ASC
	`, sqlutil.ListItemColumns, r.db.Tables.ListItems)

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, list.Key())
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

func (r *ListItemRepository) Create(ctx context.Context, new models.NewListItem) (*models.ListItem, error) {
	quantity := models.DefaultQuantity
	if new.Quantity != nil {
		quantity = *new.Quantity
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, list_id, card_core, selected_printing, quantity, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING %s
	`, r.db.Tables.ListItems, sqlutil.ListItemColumns)

	now := time.Now().UTC()
	row := r.db.executor(ctx).QueryRowContext(ctx, query,
		ids.NewKey(),
		new.List.Key(),
		new.CardCore.Key(),
		sqlutil.OptionalKey(new.SelectedPrinting),
		quantity,
		new.Notes,
		now,
		now,
	)
	item, err := sqlutil.ScanListItem(row)
	if err != nil {
		return nil, classify("create list item", "list_item", err)
	}
	return item, nil
}

func (r *ListItemRepository) Update(ctx context.Context, id ids.ListItemID, p models.PatchListItem) (*models.ListItem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.ListItemAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.db.Tables.ListItems, sqlutil.ListItemColumns, sqlutil.Question, id.Key(), time.Now().UTC())
	item, err := sqlutil.ScanListItem(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify("update list item", id.String(), err)
	}
	return item, nil
}

func (r *ListItemRepository) Delete(ctx context.Context, id ids.ListItemID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.db.Tables.ListItems)
	return r.db.deleteOne(ctx, query, "list item", id.String(), id.Key())
}
