// Package common holds what every subcommand shares: the persistent flags
// and config/logger construction for one-shot commands.
package common

import (
	"fmt"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

// DefaultConfigFile is used when neither --config nor CONFIG_PATH is set.
const DefaultConfigFile = "config.yml"

// Options are the root command's persistent flags.
type Options struct {
	ConfigPath string
	Debug      bool
	Version    string
}

// Path returns --config, else CONFIG_PATH, else config.yml.
func (o *Options) Path() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.GetConfigPath(DefaultConfigFile)
}

// Config loads configuration without the server-only validation.
func (o *Options) Config() (*config.Config, error) {
	cfg, err := config.Load(o.Path())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.Debug {
		cfg.Service.Debug = true
	}
	if o.Version != "" {
		cfg.Service.Version = o.Version
	}
	return cfg, nil
}

// Logger builds a console-encoded logger on stderr so command output on
// stdout stays clean.
func (o *Options) Logger(cfg *config.Config) (logger.Logger, error) {
	logCfg := cfg.Logging
	logCfg.Format = "console"
	logCfg.OutputPaths = []string{"stderr"}
	if logCfg.Level == "" {
		logCfg.Level = "warn"
	}
	if cfg.Service.Debug {
		logCfg.Level = "debug"
		logCfg.Development = true
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// Setup is Config followed by Logger.
func (o *Options) Setup() (*config.Config, logger.Logger, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, nil, err
	}
	log, err := o.Logger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
