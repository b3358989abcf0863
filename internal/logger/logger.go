package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, output format and destination.
type Config struct {
	Level  string
	Format string // console | json
	File   string
}

const redacted = "***"

var sensitiveKeys = []string{"password", "token", "secret"}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the process logger. Output goes to stdout, or to File
// (appending) when it is set. The returned Closer releases the file and
// must be called once logging is done.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		log, err := NewWithWriter(os.Stdout, cfg)
		return log, nopCloser{}, err
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	log, err := NewWithWriter(file, cfg)
	if err != nil {
		file.Close()
		return zerolog.Nop(), nopCloser{}, err
	}
	return log, file, nil
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(w io.Writer, cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: cfg.File != ""}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Redact returns a copy of fields with password, token and secret values
// replaced by "***". Keys match case-insensitively and by substring, so
// "access_token" and "JWT_SECRET" are masked too.
func Redact(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if isSensitive(k) {
			out[k] = redacted
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = Redact(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
