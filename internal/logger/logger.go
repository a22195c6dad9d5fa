// Package logger holds the process-wide structured logger
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sharedLogger *zap.SugaredLogger
	initOnce     sync.Once
)

// Init builds the shared logger. The level comes from level, then LOG_LEVEL, then info.
func Init(level string) {
	initOnce.Do(func() {
		sharedLogger = newLogger(level)
	})
}

func newLogger(level string) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		CallerKey:      "C",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl := zapcore.InfoLevel
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	// stdout carries the journey list, logs go to stderr
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		lvl,
	)

	return zap.New(core, zap.AddCaller()).Sugar()
}

// Get returns the shared logger, initialising it from the environment if needed
func Get() *zap.SugaredLogger {
	Init("")
	return sharedLogger
}

// Sync flushes buffered log entries
func Sync() {
	if sharedLogger != nil {
		_ = sharedLogger.Sync()
	}
}
