package logger

import (
	"fmt"
	"strings"

	"github.com/tinybank/backend/internal/config"
	"github.com/tinybank/backend/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentStaging     = "staging"
	EnvironmentDevelopment = "development"
	EnvironmentLocal       = "local"
)

// New builds a JSON logger for the configured environment and level.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))

	var zcfg zap.Config
	switch env {
	case EnvironmentDevelopment, EnvironmentLocal:
		zcfg = zap.NewDevelopmentConfig()
	case EnvironmentProduction, EnvironmentStaging, "":
		zcfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log environment %q", cfg.Environment)
	}
	zcfg.Encoding = "json"
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true

	if strings.TrimSpace(cfg.Level) != "" {
		var lvl zapcore.Level
		if err := lvl.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l.With(zap.String("service", "tinybank")), nil
}

// MaskKey hides all but the last four characters of a user key.
func MaskKey(key string) string {
	return models.MaskKey(key)
}
