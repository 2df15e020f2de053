// Package logging builds the zap logger used for diagnostics. User-facing
// output does not go through it.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger on stderr at warn level, or debug level when
// debug is set.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableStacktrace = !debug
	config.DisableCaller = !debug
	config.EncoderConfig.TimeKey = ""
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewWriter is New with an explicit sink, used by tests and embedding.
func NewWriter(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Must is New that falls back to a stderr logger on error.
func Must(debug bool) *zap.Logger {
	logger, err := New(debug)
	if err != nil {
		return NewWriter(os.Stderr, debug)
	}
	return logger
}
