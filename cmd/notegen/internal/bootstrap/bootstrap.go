// Package bootstrap builds the notegen module for the command line.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-notegen"
	"github.com/goliatone/go-notegen/internal/logging"
	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	ConfigPath     string
	Home           string
	LookupEnv      func(string) (string, bool)
	Overrides      notegen.Overrides
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the notegen module with the logger and config sources the CLI reports.
type Module struct {
	Module  *notegen.Module
	Sources notegen.ConfigSources
	Logger  interfaces.Logger
}

// BuildModule loads configuration, applies flag overrides and constructs the module.
func BuildModule(opts Options) (*Module, error) {
	cfg, sources, err := notegen.LoadConfig(notegen.LoadOptions{
		Home:       strings.TrimSpace(opts.Home),
		ConfigPath: strings.TrimSpace(opts.ConfigPath),
		LookupEnv:  opts.LookupEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg, err = cfg.Apply(opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("apply flags: %w", err)
	}

	var moduleOpts []notegen.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, notegen.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := notegen.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise notegen module: %w", err)
	}

	logger := logging.ModuleLogger(module.LoggerProvider(), "notegen.cli")
	logger.Debug("cli.config.loaded",
		"legacy", sources.Legacy,
		"yaml", sources.YAML,
		"env", sources.Env,
	)

	return &Module{
		Module:  module,
		Sources: sources,
		Logger:  logger,
	}, nil
}
