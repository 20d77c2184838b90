// Package logging builds the application's zap logger.
//
// The chat interface owns the terminal, so records go to a rotating file.
// Commands that print to the console can tee a human readable copy to stderr.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
)

// Option tweaks logger construction.
type Option func(*options)

type options struct {
	console io.Writer
}

// WithConsole tees records to w using the console encoder.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// New returns a JSON logger writing to cfg.File through lumberjack rotation.
func New(cfg config.LogConfig, opts ...Option) (*zap.Logger, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	rotate := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotate), level),
	}
	if o.console != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(o.console), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// MustStderr returns a console logger for failures that happen before the
// configured logger exists.
func MustStderr() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	return zap.New(core)
}
