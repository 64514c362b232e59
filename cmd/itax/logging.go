package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/itax/internal/config"
)

// initializeLogger creates a zap logger from the logging settings
func initializeLogger(loggingConfig config.LoggingConfig) (*zap.Logger, error) {
	level := strings.ToLower(loggingConfig.Level)
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", loggingConfig.Level)
	}

	format := strings.ToLower(loggingConfig.Format)
	if format == "" {
		format = "console"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}
