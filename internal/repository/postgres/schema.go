package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var schemaTemplate = template.Must(template.New("schema").Option("missingkey=error").Parse(schemaSQL))

// RenderSchema returns the schema DDL for the given table names.
func RenderSchema(tables *TableNames) (string, error) {
	var b strings.Builder
	if err := schemaTemplate.Execute(&b, tables); err != nil {
		return "", fmt.Errorf("render schema: %w", err)
	}
	return b.String(), nil
}

// ApplySchema creates any missing tables and the root folder. It is
// idempotent and runs in a single transaction.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl, err := RenderSchema(tables)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Simple protocol allows several statements per Exec
	if _, err := tx.Conn().PgConn().Exec(ctx, ddl).ReadAll(); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// DropTables removes every library table. Used by the seeder's -drop-tables.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf("DROP TABLE IF EXISTS %s, %s, %s, %s, %s CASCADE",
		tables.ListItems, tables.Lists, tables.Projects, tables.Folders, tables.Tags)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}
