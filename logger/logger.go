// Package logger builds zap loggers from the loader level names.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger. Verbosity accepts the loader names trace, debug, info,
// warn, error, critical and off besides the zap ones; off yields a no-op logger. file, when
// set, replaces stderr as output.
func New(verbosity, file string) (*zap.Logger, error) {
	v := strings.ToLower(strings.TrimSpace(verbosity))
	switch v {
	case "off":
		return zap.NewNop(), nil
	case "trace":
		v = "debug"
	case "critical":
		v = "error"
	}
	config := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(v)
	if err != nil {
		return nil, err
	}
	config.Level = level
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if file != "" {
		config.OutputPaths = []string{file}
		config.ErrorOutputPaths = []string{file}
	}
	return config.Build()
}
