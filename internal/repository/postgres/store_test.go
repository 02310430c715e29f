package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/storetest"
)

var prefixSeq atomic.Int32

// openTestStore creates a fresh set of tables under a unique prefix and
// drops them when the test ends.
func openTestStore(t *testing.T) *repo.Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := CreateConnectionPool(ctx, url)
	require.NoError(t, err)

	tables := NewTableNames(fmt.Sprintf("t%d_%d_", os.Getpid(), prefixSeq.Add(1)))
	require.NoError(t, ApplySchema(ctx, pool, tables))

	t.Cleanup(func() {
		_ = DropTables(context.Background(), pool, tables)
		pool.Close()
	})

	return NewStore(&RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
}

func TestStore(t *testing.T) {
	storetest.Run(t, openTestStore)
}

func TestRenderSchema(t *testing.T) {
	ddl, err := RenderSchema(NewTableNames("dev_"))
	require.NoError(t, err)

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS dev_folders")
	assert.Contains(t, ddl, "REFERENCES dev_projects(id) ON DELETE CASCADE")
	assert.NotContains(t, ddl, "{{")
	assert.True(t, strings.Contains(ddl, "ON CONFLICT"), "root insert must be idempotent")
}
