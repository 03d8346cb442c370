// Package logging builds the console logger used by the command line tool.
// The logger is created once at startup and passed to the pipeline
// explicitly; nothing in this module installs a global logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted on the command line, in increasing severity.
var Levels = []string{"debug", "info", "warning", "error", "quiet"}

const Quiet = "quiet"

// ParseLevel maps a command line level name onto a zap level. "quiet" is
// valid but has no zap level; callers check for it before building a core.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case Quiet:
		return zapcore.InvalidLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf("invalid log level %q (allowed: %s)", name, strings.Join(Levels, ", "))
	}
}

// New returns a logger writing lines of the form " [LEVEL]  message" to w.
// The quiet level yields a no-op logger.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(level, Quiet) {
		return zap.NewNop(), nil
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.MillisDurationEncoder,
		ConsoleSeparator: "  ",
	}
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(" [" + levelName(l) + "]")
}

func levelName(l zapcore.Level) string {
	switch l {
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return "CRITICAL"
	default:
		return l.CapitalString()
	}
}
