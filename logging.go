package appconfig

import (
	"context"
	"log/slog"
	"time"
)

const (
	// OpGet marks events produced by a top-level lookup.
	OpGet = "get"
	// OpLoad marks events produced while constructing a Config.
	OpLoad = "load"
)

// ResolveLogEvent describes one top-level lookup, or an activity hook failure
// during construction.
type ResolveLogEvent struct {
	Op           string
	Source       string
	Key          string
	ResolutionID string
	Found        bool
	NoResolve    bool
	Duration     time.Duration
	Err          error
	// HookErr carries failures returned by activity hooks. They never reach
	// the caller of Get.
	HookErr error
}

// ResolveLogger records resolution events.
type ResolveLogger interface {
	LogResolution(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolution implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolution(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolution(ResolveLogEvent) {}

// SlogLogger writes resolution events as structured records. Successful
// lookups are logged at debug level, failures at warn level. A nil logger
// falls back to slog.Default.
func SlogLogger(logger *slog.Logger) ResolveLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return ResolveLoggerFunc(func(event ResolveLogEvent) {
		attrs := []slog.Attr{
			slog.String("op", event.Op),
		}
		if event.Source != "" {
			attrs = append(attrs, slog.String("source", event.Source))
		}
		if event.Op == OpGet {
			attrs = append(attrs,
				slog.String("key", event.Key),
				slog.String("resolution_id", event.ResolutionID),
				slog.Bool("found", event.Found),
				slog.Bool("no_resolve", event.NoResolve),
				slog.Duration("duration", event.Duration),
			)
		}

		level := slog.LevelDebug
		if event.Err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("error", event.Err.Error()))
		}
		if event.HookErr != nil {
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("hook_error", event.HookErr.Error()))
		}
		logger.LogAttrs(context.Background(), level, "appconfig resolution", attrs...)
	})
}

// WithResolveLogger attaches a resolution logger. A nil logger restores the
// no-op default.
func WithResolveLogger(logger ResolveLogger) Option {
	return func(cfg *configOptions) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}

func (c *Config) resolveLogger() ResolveLogger {
	if c.cfg.logger != nil {
		return c.cfg.logger
	}
	return noopResolveLogger{}
}
