package logging

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"kilometers.ai/edit/internal/core/ports"
)

// SlogGateway implements ports.LoggingGateway on top of log/slog
type SlogGateway struct {
	logger *slog.Logger
}

// NewSlogGateway creates a gateway writing to w in the given format ("json" or "text")
// and dropping messages below level
func NewSlogGateway(w io.Writer, level ports.LogLevel, format string) *SlogGateway {
	opts := &slog.HandlerOptions{Level: toSlogLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogGateway{logger: slog.New(handler)}
}

// Log logs a message with the specified level
func (g *SlogGateway) Log(level ports.LogLevel, message string, fields map[string]interface{}) {
	g.logger.LogAttrs(context.Background(), toSlogLevel(level), message, attrs(fields)...)
}

// LogError logs an error
func (g *SlogGateway) LogError(err error, message string, fields map[string]interface{}) {
	all := append(attrs(fields), slog.Any("error", err))
	g.logger.LogAttrs(context.Background(), slog.LevelError, message, all...)
}

func toSlogLevel(level ports.LogLevel) slog.Level {
	switch level {
	case ports.LogLevelDebug:
		return slog.LevelDebug
	case ports.LogLevelWarn:
		return slog.LevelWarn
	case ports.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// attrs converts fields to attributes sorted by key so output is stable
func attrs(fields map[string]interface{}) []slog.Attr {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

var _ ports.LoggingGateway = (*SlogGateway)(nil)
