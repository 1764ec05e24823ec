// Package logging builds the slog logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the configured log level when set.
const EnvLevel = "LONGAUTOTYPER_LOG_LEVEL"

// Format is the output format for logs.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds the logging configuration.
type Config struct {
	Level     slog.Level
	Format    Format
	Component string
}

// DefaultConfig returns text logs at info level.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Format:    FormatText,
		Component: "longautotyper",
	}
}

// Logger is a slog logger whose level can be changed while running.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// New creates a Logger writing to w, or stderr when w is nil.
func New(cfg Config, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := new(slog.LevelVar)
	level.Set(cfg.Level)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			// Typed text only reaches the log at debug level.
			if isTextAttr(attr.Key) && level.Level() > slog.LevelDebug {
				attr.Value = slog.StringValue("[REDACTED]")
			}
			return attr
		},
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	if cfg.Component != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("component", cfg.Component)})
	}
	return &Logger{Logger: slog.New(handler), level: level}
}

// WithComponent returns a child logger tagged with name.
func (logger *Logger) WithComponent(name string) *slog.Logger {
	return logger.Logger.With(slog.String("component", name))
}

// SetLevel parses and applies level. Unknown names leave the level unchanged.
func (logger *Logger) SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	logger.level.Set(parsed)
	return nil
}

// Level returns the current minimum level.
func (logger *Logger) Level() slog.Level {
	return logger.level.Level()
}

// ResolveLevel returns the level from the environment override, falling back
// to configured.
func ResolveLevel(configured string) (slog.Level, error) {
	if env := strings.TrimSpace(os.Getenv(EnvLevel)); env != "" {
		return ParseLevel(env)
	}
	if strings.TrimSpace(configured) == "" {
		return slog.LevelInfo, nil
	}
	return ParseLevel(configured)
}

// ParseLevel parses a level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// LevelString returns the name of a level.
func LevelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return "info"
	}
}

func isTextAttr(key string) bool {
	switch strings.ToLower(key) {
	case "preview", "text":
		return true
	}
	return false
}
