package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	b := New("sqlite3")

	sql, args, err := b.Select("book", []string{"id", "title"}, Where{"title": "X"}, "", 5)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `title` FROM `book` WHERE (`title` = ?) LIMIT 5", sql)
	assert.Equal(t, []interface{}{"X"}, args)
}

func TestSelect_NoValueInSQL(t *testing.T) {
	b := New("mysql")

	sql, args, err := b.Select("book", nil, Where{"title": "'; DROP TABLE book; --"}, "title", 0)
	require.NoError(t, err)
	assert.NotContains(t, sql, "DROP")
	assert.NotContains(t, sql, "LIMIT")
	assert.Contains(t, sql, "ORDER BY `title` ASC")
	assert.Contains(t, args, "'; DROP TABLE book; --")
}

func TestInsertUpdateDelete(t *testing.T) {
	b := New("sqlite3")

	sql, args, err := b.Insert("book", map[string]interface{}{"id": "b1", "title": "Go"})
	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO `book`")
	assert.ElementsMatch(t, []interface{}{"b1", "Go"}, args)

	sql, args, err = b.Update("book", map[string]interface{}{"title": "Go 2"}, Where{"id": "b1"})
	require.NoError(t, err)
	assert.Contains(t, sql, "UPDATE `book` SET")
	assert.Contains(t, sql, "WHERE (`id` = ?)")
	assert.Equal(t, []interface{}{"Go 2", "b1"}, args)

	sql, args, err = b.Delete("book", Where{"id": "b1"})
	require.NoError(t, err)
	assert.Contains(t, sql, "DELETE FROM `book`")
	assert.Equal(t, []interface{}{"b1"}, args)
}

func TestMissingWhere(t *testing.T) {
	b := New("sqlite3")

	_, _, err := b.Update("book", map[string]interface{}{"title": "x"}, nil)
	assert.Error(t, err)

	_, _, err = b.Delete("book", Where{})
	assert.Error(t, err)
}

func TestConditionalCounterUpdate(t *testing.T) {
	b := New("sqlite3")

	sql, args, err := b.Update("book",
		map[string]interface{}{"number_of_copies": Add("number_of_copies", -1)},
		Where{"id": "b1", "number_of_available_books": GreaterThan(0)})
	require.NoError(t, err)
	assert.Contains(t, sql, "SET `number_of_copies`=`number_of_copies` + ?")
	assert.Contains(t, sql, "`number_of_available_books` > ?")
	assert.Contains(t, sql, "`id` = ?")
	assert.Len(t, args, 3)
	assert.Equal(t, -1, args[0])
}
