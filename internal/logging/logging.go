package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures the application logger.
type Options struct {
	Format string
	Level  string
	// File, when set, receives a JSON copy of every entry with size-based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Output defaults to stderr.
	Output io.Writer
}

// Logger wraps a zap logger together with the rotating file it may write to.
type Logger struct {
	*zap.Logger

	file *lumberjack.Logger
}

// New builds a logger writing Format-encoded entries to Output at Level.
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var encoder zapcore.Encoder

	switch orDefault(opts.Format, FormatJSON) {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case FormatConsole:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(output), level)}

	var file *lumberjack.Logger

	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return &Logger{Logger: logger, file: file}, nil
}

// Shutdown flushes buffered entries and closes the log file.
func (l *Logger) Shutdown() error {
	_ = l.Sync()

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
