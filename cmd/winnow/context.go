package main

import (
	"log/slog"
	"strings"
	"sync"

	"winnow/internal/cache"
	"winnow/internal/config"
	"winnow/internal/logging"
	"winnow/internal/normalize"
	"winnow/internal/scanner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newPipeline assembles the per-file pipeline from loaded config. The cache
// store is optional; pass nil to skip caching entirely.
func (c *commandContext) newPipeline(store *cache.Store, logger *slog.Logger) (*scanner.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return &scanner.Pipeline{
		Cache:    store,
		Backends: normalize.NewRegistry(cfg),
		Logger:   logger,
	}, nil
}
