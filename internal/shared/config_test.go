package shared

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Rules.MaxSnippets)
	assert.Equal(t, "./reports", c.Reporting.OutDir)
	assert.Equal(t, []string{"json", "html"}, c.Reporting.Formats)
	assert.Equal(t, "./mfippa.db", c.Database.DSN)
	assert.Equal(t, ":8080", c.API.Addr)
	assert.Equal(t, int64(10<<20), c.API.MaxUploadBytes)
	assert.Equal(t, 12*time.Hour, c.SessionDuration())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfig_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mfippa.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
rules:
  disabled: [use_limitation]
  max_snippets: 3
reporting:
  formats: [markdown]
api:
  require_auth: true
  session_hours: 2
logging:
  format: text
`), 0o644))

	c, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"use_limitation"}, c.Rules.Disabled)
	assert.Equal(t, 3, c.Rules.MaxSnippets)
	assert.Equal(t, []string{"markdown"}, c.Reporting.Formats)
	assert.True(t, c.API.RequireAuth)
	assert.Equal(t, 2*time.Hour, c.SessionDuration())
	assert.Equal(t, "text", c.Logging.Format)
	// untouched keys keep defaults
	assert.Equal(t, "./mfippa.db", c.Database.DSN)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MFIPPA_DB_DSN", "/tmp/x.db")
	t.Setenv("MFIPPA_RULES_PACK", "/etc/mfippa/pack.yaml")
	t.Setenv("MFIPPA_REQUIRE_AUTH", "true")
	t.Setenv("MFIPPA_LOG_LEVEL", "debug")
	t.Setenv("MFIPPA_API_ADDR", "127.0.0.1:9000")

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", c.Database.DSN)
	assert.Equal(t, "/etc/mfippa/pack.yaml", c.Rules.Pack)
	assert.True(t, c.API.RequireAuth)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "127.0.0.1:9000", c.API.Addr)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: [oops"), 0o644))
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	pg := filepath.Join(dir, "pg.yaml")
	require.NoError(t, os.WriteFile(pg, []byte("database:\n  driver: postgres\n"), 0o644))
	_, err = LoadConfig(pg)
	assert.ErrorContains(t, err, "only sqlite")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "json", "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "rules", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 7, rec["rules"])
	assert.NotContains(t, rec, "source")

	buf.Reset()
	logger, err = NewLogger(&buf, "text", "debug")
	require.NoError(t, err)
	logger.Debug("dbg")
	assert.Contains(t, buf.String(), "msg=dbg")
	assert.Contains(t, buf.String(), "source=")
}

func TestNewLogger_RejectsUnknownSettings(t *testing.T) {
	_, err := NewLogger(io.Discard, "xml", "info")
	assert.ErrorContains(t, err, "logging.format")

	_, err = NewLogger(io.Discard, "json", "loud")
	assert.ErrorContains(t, err, "logging.level")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"info+2", slog.LevelInfo + 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
