package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModeDev, cfg.AppMode)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "library.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "30 8 * * *", cfg.OverdueCron)
	assert.Equal(t, uint(100), cfg.BookListLimit)
}

func TestLoad_Environment(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("APP_MODE", "PROD")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("OVERDUE_CRON", "off")
	t.Setenv("BOOK_LIST_LIMIT", "25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModeProd, cfg.AppMode)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, CronDisabled, cfg.OverdueCron)
	assert.Equal(t, uint(25), cfg.BookListLimit)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT: \"7000\"\nDB_PATH: books.db\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, "books.db", cfg.Database.Path)
}

func TestLoad_Invalid(t *testing.T) {
	testChdir(t, t.TempDir())

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"mode", "APP_MODE", "staging"},
		{"driver", "DB_DRIVER", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// testChdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
