// Package logger builds the zap loggers used by memctl and, optionally, by
// allocators that want their debug trail on disk.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// FormatConsole writes human-readable lines.
	FormatConsole = "console"

	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"

	defaultMaxSizeMB = 64
)

// Options configures logger construction.
type Options struct {
	Level      string // debug, info, warn, error. Default: info
	Format     string // console or json. Default: console
	Filename   string // Empty writes to stderr
	MaxSize    int    // Megabytes before rotation. Default: 64
	MaxDays    int    // Days to retain rotated files. 0 keeps all
	MaxBackups int    // Rotated files to retain. 0 keeps all
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("logger: bad level %q: %w", opts.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch opts.Format {
	case "", FormatConsole:
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("logger: unknown format %q", opts.Format)
	}

	return zap.New(zapcore.NewCore(enc, sink(opts), level)), nil
}

func sink(opts Options) zapcore.WriteSyncer {
	if opts.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    maxSize,
		MaxAge:     opts.MaxDays,
		MaxBackups: opts.MaxBackups,
	})
}
