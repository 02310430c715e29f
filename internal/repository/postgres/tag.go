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

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves a tag by ID
func (r *PostgresTagRepository) Get(ctx context.Context, id ids.TagID) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sqlutil.TagColumns, r.tables.Tags)

	tag, err := sqlutil.ScanTag(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id.Key()))
	if err != nil {
		return nil, classify("get tag", id.String(), err)
	}
	return tag, nil
}

// List returns every tag ordered by name
func (r *PostgresTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY name COLLATE "C" ASC, id COLLATE "C" ASC
	`, sqlutil.TagColumns, r.tables.Tags)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
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

// Create creates a new tag
func (r *PostgresTagRepository) Create(ctx context.Context, new models.NewTag) (*models.Tag, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING %s
	`, r.tables.Tags, sqlutil.TagColumns)

	now := time.Now().UTC()
	tag, err := sqlutil.ScanTag(GetExecutor(ctx, r.pool).QueryRow(ctx, query, new.Name, new.Color, now))
	if err != nil {
		return nil, classify("create tag", "tag", err)
	}
	return tag, nil
}

// Update applies a patch to a tag
func (r *PostgresTagRepository) Update(ctx context.Context, id ids.TagID, p models.PatchTag) (*models.Tag, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	assignments := sqlutil.TagAssignments(p)
	if assignments.Empty() {
		return nil, domain.ErrNoOp
	}

	query, args := assignments.UpdateStatement(r.tables.Tags, sqlutil.TagColumns, sqlutil.Dollar, id.Key(), time.Now().UTC())
	tag, err := sqlutil.ScanTag(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update tag", id.String(), err)
	}
	return tag, nil
}

// Delete deletes a tag
func (r *PostgresTagRepository) Delete(ctx context.Context, id ids.TagID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id.Key())
	if err != nil {
		return classify("delete tag", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
