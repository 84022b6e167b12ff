// Package bootstrap builds the admin service from configuration.
package bootstrap

import (
	"fmt"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

// LoadConfig loads and validates configuration. debug overrides service.debug
// when set.
func LoadConfig(path string, debug bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if debug {
		cfg.Service.Debug = true
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates the service logger, tagged with name and version.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	logCfg := cfg.Logging
	if cfg.Service.Debug {
		logCfg.Level = "debug"
		logCfg.Development = true
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
	), nil
}
