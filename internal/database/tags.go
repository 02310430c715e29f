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

// TagRepository is the SQLite TagRepository
type TagRepository struct {
	db *DB
}

var _ repo.TagRepository = (*TagRepository)(nil)

func (r *TagRepository) Get(ctx context.Context, id ids.TagID) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ?
	`, sqlutil.TagColumns, r.db.Tables.Tags)

	tag, err := sqlutil.ScanTag(r.db.executor(ctx).QueryRowContext(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get tag", id.String(), err)
	}
	return tag, nil
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY name ASC, id ASC
	`, sqlutil.TagColumns, r.db.Tables.Tags)

	rows, err := r.db.executor(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapDB("list tags", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		tag, err := sqlutil.ScanTag(rows)
		if err != nil {
			return nil, domain.WrapDB("scan tag", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapDB("iterate tags", err)
	}
	return tags, nil
}

func (r *TagRepository) Create(ctx context.Context, new models.NewTag) (*models.Tag, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s
	`, r.db.Tables.Tags, sqlutil.TagColumns)

	now := time.Now().UTC()
	row := r.db.executor(ctx).QueryRowContext(ctx, query, ids.NewKey(), new.Name, new.Color, now, now)
	tag, err := sqlutil.ScanTag(row)
	if err != nil {
		return nil, classify("create tag", "tag", err)
	}
	return tag, nil
}

func (r *TagRepository) Update(ctx context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.TagAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.db.Tables.Tags, sqlutil.TagColumns, sqlutil.Question, id.Key(), time.Now().UTC())
	tag, err := sqlutil.ScanTag(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify("update tag", id.String(), err)
	}
	return tag, nil
}

func (r *TagRepository) Delete(ctx context.Context, id ids.TagID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.db.Tables.Tags)
	return r.db.deleteOne(ctx, query, "tag", id.String(), id.Key())
}
