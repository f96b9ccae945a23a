package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	Level  zerolog.Level
	Format string
	Output io.Writer
}

// Logger writes structured diagnostics to stderr, away from the quote text on stdout.
// Fields added with With travel in the context.
type Logger struct {
	base zerolog.Logger
}

type fieldsKey struct{}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: opts.Output != nil}
	}

	level := opts.Level
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return &Logger{base: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// ParseLevel maps LOG_LEVEL text to a level. Blank or unknown text means info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// With returns a context carrying extra key/value pairs for every entry logged under it.
func (l *Logger) With(ctx context.Context, keyvals ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	prev, _ := ctx.Value(fieldsKey{}).([]any)
	fields := make([]any, 0, len(prev)+len(keyvals))
	fields = append(append(fields, prev...), keyvals...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

func (l *Logger) event(ctx context.Context, ev *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return ev
	}
	if fields, ok := ctx.Value(fieldsKey{}).([]any); ok {
		ev = ev.Fields(fields)
	}
	return ev
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.event(ctx, l.base.Debug()).Msg(msg)
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	l.event(ctx, l.base.Warn()).Msg(msg)
}

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.event(ctx, l.base.Error()).Err(err).Msg(msg)
}

// RowSkipped records a source row the loader could not import.
func (l *Logger) RowSkipped(ctx context.Context, source string, line int, err error) {
	l.event(ctx, l.base.Warn()).
		Str("source", source).
		Int("line", line).
		Err(err).
		Msg("skipping source row")
}

// Synced records the row counts of a finished import.
func (l *Logger) Synced(ctx context.Context, products, requirements, rules, skipped int) {
	l.event(ctx, l.base.Info()).
		Int("products", products).
		Int("requirements", requirements).
		Int("rules", rules).
		Int("skipped_rows", skipped).
		Msg("database synchronized with source files")
}
