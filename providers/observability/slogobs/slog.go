package slogobs

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/leofalp/react-agent/providers/observability"
)

// LevelTrace sits below slog.LevelDebug; slog has no native trace level.
const LevelTrace = slog.LevelDebug - 4

// Observer implements observability.Observer using log/slog.
type Observer struct {
	logger *slog.Logger
}

// Ensure Observer implements observability.Observer.
var _ observability.Observer = (*Observer)(nil)

// options holds configuration collected by Option functions.
type options struct {
	logger *slog.Logger
	level  slog.Leveler
}

// Option configures the observer returned by [New].
type Option func(*options)

// WithLogger uses an existing slog.Logger instead of constructing one.
// When set, WithLevel is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLevel sets the minimum level for the internally constructed logger.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// New creates a slog-backed observer. Without options it builds a text
// handler on stderr whose level comes from REACT_AGENT_LOG_LEVEL
// (trace|debug|info|warn|error, default info).
func New(opts ...Option) *Observer {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger != nil {
		return &Observer{logger: cfg.logger}
	}

	level := cfg.level
	if level == nil {
		level = levelFromEnv()
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Observer{logger: slog.New(handler)}
}

// levelFromEnv maps REACT_AGENT_LOG_LEVEL to a slog level, defaulting to info.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("REACT_AGENT_LOG_LEVEL")) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (o *Observer) log(level slog.Level, msg string, attrs []observability.Attribute) {
	if !o.logger.Enabled(context.Background(), level) {
		return
	}
	logAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(context.Background(), level, msg, logAttrs...)
}

// Trace logs at the custom trace level (below debug).
func (o *Observer) Trace(msg string, attrs ...observability.Attribute) {
	o.log(LevelTrace, msg, attrs)
}

// Debug logs at debug level.
func (o *Observer) Debug(msg string, attrs ...observability.Attribute) {
	o.log(slog.LevelDebug, msg, attrs)
}

// Info logs at info level.
func (o *Observer) Info(msg string, attrs ...observability.Attribute) {
	o.log(slog.LevelInfo, msg, attrs)
}

// Warn logs at warn level.
func (o *Observer) Warn(msg string, attrs ...observability.Attribute) {
	o.log(slog.LevelWarn, msg, attrs)
}

// Error logs at error level.
func (o *Observer) Error(msg string, attrs ...observability.Attribute) {
	o.log(slog.LevelError, msg, attrs)
}
