package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, Config{Level: "warn", Format: "json"})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("book_id", "b1").Msg("shown")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "b1", line["book_id"])
	assert.Equal(t, "warn", line["level"])
}

func TestNewWithWriter_Errors(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, Config{Level: "loud"})
	assert.Error(t, err)

	_, err = NewWithWriter(&bytes.Buffer{}, Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, closer, err := New(Config{Format: "json", File: path})
	require.NoError(t, err)
	log.Info().Msg("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"written"`)

	// closing twice reports the file as already closed
	assert.Error(t, closer.Close())

	_, closer, err = New(Config{File: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
	assert.NoError(t, closer.Close())

	_, closer, err = New(Config{Format: "xml", File: filepath.Join(t.TempDir(), "bad.log")})
	assert.Error(t, err)
	assert.NoError(t, closer.Close())
}

func TestNew_Stdout(t *testing.T) {
	_, closer, err := New(Config{Format: "console"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestRedact(t *testing.T) {
	in := map[string]interface{}{
		"email":        "user@jecrc.ac.in",
		"Password":     "Strongpass@123",
		"access_token": "abc",
		"nested":       map[string]interface{}{"jwt_secret": "s", "name": "ok"},
	}

	out := Redact(in)

	assert.Equal(t, "user@jecrc.ac.in", out["email"])
	assert.Equal(t, "***", out["Password"])
	assert.Equal(t, "***", out["access_token"])
	assert.Equal(t, map[string]interface{}{"jwt_secret": "***", "name": "ok"}, out["nested"])
	assert.Equal(t, "Strongpass@123", in["Password"], "input must not be modified")
}
