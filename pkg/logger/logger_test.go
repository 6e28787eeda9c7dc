package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Level: "debug", Writer: &buf})

	log.WithComponent("Archiver").Info("post archived", "post_id", "p1")

	out := buf.String()
	assert.Contains(t, out, `"message":"post archived"`)
	assert.Contains(t, out, `"component":"Archiver"`)
	assert.Contains(t, out, `"post_id":"p1"`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Level: "info", Writer: &buf})

	log.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, log.Logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
