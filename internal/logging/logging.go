// Package logging sets up zerolog for roster. The TUI owns the terminal, so interactive
// sessions only ever log to a file.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type Options struct {
	// File is appended to when set.
	File  string
	Level zerolog.Level
	// Console also writes human-readable lines to stderr.
	Console bool
}

// Init builds a logger from opts. The returned closer releases the log file.
func Init(opts Options) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, err
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		writers = append(writers, f)
		closer = f
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(opts.Level)
	return logger, closer, nil
}

// WithFields returns ctx carrying l extended with fields.
func WithFields(ctx context.Context, l zerolog.Logger, fields map[string]any) context.Context {
	return l.With().Fields(fields).Logger().WithContext(ctx)
}

// From extracts the logger stored by WithFields, falling back to a no-op logger.
func From(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		nop := zerolog.Nop()
		return &nop
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
