package utils

import (
	"log"

	"tourbook/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration from AppConfig:
// JSON output at LOG_LEVEL in production, colored console output in
// development.
func InitializeLogger() {
	var cfg zap.Config

	if config.AppConfig.Env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel
	if config.AppConfig.LogLevel != "" {
		if err := level.Set(config.AppConfig.LogLevel); err != nil {
			level = zapcore.InfoLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
