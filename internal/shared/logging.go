package shared

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a configured level name to a slog level. Empty means
// info; "warning" is accepted for warn; offsets such as "info+2" follow
// slog.Level's text form.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	switch s = strings.TrimSpace(s); strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level %q: want debug, info, warn or error", s)
	}
	return lvl, nil
}

// NewLogger builds the diagnostics logger. Logs go to w only, which for the
// CLI is stderr: stdout is reserved for the report so it can be piped.
// The caller decides whether to install the result with slog.SetDefault.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("logging.format %q: want json or text", format)
	}
	return slog.New(h), nil
}
