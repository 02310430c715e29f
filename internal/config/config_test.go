package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "lib.db"))
	os.Unsetenv("DB_DRIVER")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "", cfg.TablePrefix)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPostgresPrefix(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "postgres://localhost/lotuslab")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TABLE_PREFIX", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_", cfg.TablePrefix)
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestSetupLogFileKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"lotuslab-2020-01-01T00-00-00.log",
		"lotuslab-2020-01-02T00-00-00.log",
		"lotuslab-2020-01-03T00-00-00.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "lotuslab-*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, f.Name())
}
