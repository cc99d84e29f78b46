package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger backend.
type Options struct {
	// Format is one of json, text (slog) or zap.
	Format string
	// Level is one of debug, info, warn, error.
	Level string
}

// New builds a Logger for the given options writing to w.
func New(opts Options, w io.Writer) (Logger, error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" {
		level = "info"
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "json":
		lvl, err := slogLevel(level)
		if err != nil {
			return nil, err
		}
		return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case "text":
		lvl, err := slogLevel(level)
		if err != nil {
			return nil, err
		}
		return NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case "zap":
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
		return NewZapAdapter(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

func slogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
