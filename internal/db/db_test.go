package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/model"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:library.db?_foreign_keys=on&_busy_timeout=5000", SQLiteDSN("library.db"))
	assert.Equal(t, "file:x?mode=memory", SQLiteDSN("file:x?mode=memory"))
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "mysql", Dialect("mysql"))
	assert.Equal(t, "sqlite3", Dialect("sqlite"))
	assert.Equal(t, "sqlite3", Dialect(""))
}

func TestOpenMigratePing(t *testing.T) {
	gdb, err := Open(Config{
		Driver:   "sqlite",
		Path:     "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	require.NoError(t, Ping(context.Background(), gdb))

	for _, table := range []string{"user", "book", "issuedBook"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
	assert.True(t, gdb.Migrator().HasColumn(&model.Book{}, "number_of_available_books"))

	// role is restricted to admin and user
	err = gdb.Create(&model.User{Name: "abc", Role: "root", Year: "1", Branch: "IT", Email: "a@jecrc.ac.in", Password: "x"}).Error
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "postgres"})
	assert.Error(t, err)
}
