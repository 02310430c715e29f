// Package database is the embedded SQLite store. It is the default backend of
// the desktop build: one file, one connection, foreign keys enforced.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

var schemaTemplate = template.Must(template.New("schema").Option("missingkey=error").Parse(schemaSQL))

type DB struct {
	*sql.DB
	Tables *TableNames
}

// Open opens (creating if needed) the database file at path and applies the
// schema. Schema failure is returned as an error and the handle is closed.
func Open(ctx context.Context, path string, tablePrefix string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers anyway; one connection keeps transactions and
	// pragmas on the same handle.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{
		DB:     conn,
		Tables: NewTableNames(tablePrefix),
	}

	if err := db.ApplySchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

// ApplySchema creates any missing tables and the root folder.
func (db *DB) ApplySchema(ctx context.Context) error {
	var b strings.Builder
	if err := schemaTemplate.Execute(&b, db.Tables); err != nil {
		return fmt.Errorf("render schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// DropTables removes every library table.
func (db *DB) DropTables(ctx context.Context) error {
	for _, table := range []string{db.Tables.ListItems, db.Tables.Lists, db.Tables.Projects, db.Tables.Folders, db.Tables.Tags} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
