package logger

import (
	"fmt"
	"strings"

	"profile-api/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: JSON in production, console otherwise.
// cfg.Log.Level, when set, overrides the default level.
func New(cfg config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.App.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if lvl := strings.TrimSpace(cfg.Log.Level); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}
