package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable holding the log level
const EnvLevel = "SHOT_LOG"

// DefaultLevel keeps diagnostics quiet; user-facing output goes through pkg/ui.
const DefaultLevel = zapcore.WarnLevel

// New builds a console logger on stderr at the given level.
// An empty or unknown level falls back to DefaultLevel.
func New(level string) *zap.Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter is New with an explicit sink
func NewWithWriter(level string, w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		ParseLevel(level),
	)
	return zap.New(core)
}

// FromEnv builds the logger from SHOT_LOG
func FromEnv() *zap.Logger {
	return New(os.Getenv(EnvLevel))
}

// ParseLevel maps a level name to a zap level
func ParseLevel(level string) zapcore.Level {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}
