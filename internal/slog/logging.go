// Package slog configures the log/slog loggers handed to the congestion
// core's components.
package slog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelNone is a log level that disables all logging.
const LogLevelNone slog.Level = slog.LevelError + 1

// ComponentKey is the slog attribute key used to identify the component.
const ComponentKey = "component"

type logLevels struct {
	Level      slog.Level            // top-level log level
	Components map[string]slog.Level // nil if no component-specific levels
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "none":
		return LogLevelNone, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

// parseLogConfig parses the TCPBBR_LOG_LEVEL environment variable format.
//
// Valid formats:
//   - "info"                             - top-level only
//   - "debug,congestion=info"            - top-level + component
//   - "congestion=debug,dctcp=error"     - components only (no top-level)
func parseLogConfig(config string) (logLevels, error) {
	levels := logLevels{Level: LogLevelNone}

	if config == "" {
		return levels, nil
	}

	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if component, levelStr, ok := strings.Cut(part, "="); ok {
			level, err := parseLogLevel(strings.TrimSpace(levelStr))
			if err != nil {
				return logLevels{}, fmt.Errorf("component %s: %w", strings.TrimSpace(component), err)
			}
			if levels.Components == nil {
				levels.Components = make(map[string]slog.Level)
			}
			levels.Components[strings.TrimSpace(component)] = level
		} else {
			level, err := parseLogLevel(part)
			if err != nil {
				return logLevels{}, err
			}
			levels.Level = level
		}
	}

	return levels, nil
}

type levelFilterHandler struct {
	Component string // component attribute value for this handler, empty for top-level

	slog.Handler
	Levels logLevels
}

var _ slog.Handler = &levelFilterHandler{}

func (h *levelFilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.Levels.Components != nil {
		if minLevel, ok := h.Levels.Components[h.Component]; ok {
			return level >= minLevel
		}
	}
	// Fall back to top-level
	return level >= h.Levels.Level
}

func (h *levelFilterHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.Handler.Handle(ctx, r)
}

func (h *levelFilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComponent := h.Component
	for _, attr := range attrs {
		if attr.Key == ComponentKey {
			newComponent = attr.Value.String()
			break
		}
	}
	return &levelFilterHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		Levels:    h.Levels,
		Component: newComponent,
	}
}

func (h *levelFilterHandler) WithGroup(name string) slog.Handler {
	return &levelFilterHandler{
		Handler:   h.Handler.WithGroup(name),
		Levels:    h.Levels,
		Component: h.Component,
	}
}

// NewLogger creates a logger writing to w, filtered according to the
// TCPBBR_LOG_LEVEL environment variable.
func NewLogger(w io.Writer) *slog.Logger {
	logConfig := os.Getenv("TCPBBR_LOG_LEVEL")
	levels, err := parseLogConfig(logConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse TCPBBR_LOG_LEVEL: %v\n", err)
		os.Exit(1)
	}

	return slog.New(&levelFilterHandler{
		Handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			// allow all levels through, filtering is done by levelFilterHandler
			Level: slog.LevelDebug,
		}),
		Levels: levels,
	})
}
