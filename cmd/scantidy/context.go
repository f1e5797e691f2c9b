package main

import (
	"log/slog"
	"strings"
	"sync"

	"scantidy/internal/config"
	"scantidy/internal/engine"
	"scantidy/internal/expect"
	"scantidy/internal/logging"
	"scantidy/internal/rules"
	"scantidy/internal/xnat"
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

func (c *commandContext) newClient() (*xnat.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := []xnat.Option{xnat.WithTimeout(cfg.XNAT.Timeout())}
	if cfg.XNAT.Token != "" {
		opts = append(opts, xnat.WithToken(cfg.XNAT.Token))
	} else {
		opts = append(opts, xnat.WithBasicAuth(cfg.XNAT.Username, cfg.XNAT.Password))
	}
	return xnat.New(cfg.XNAT.BaseURL, opts...)
}

func (c *commandContext) openRules() (*rules.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return rules.Open(cfg.Rules.DBPath)
}

// newEngine wires the audit pipeline; the caller owns closing the returned
// rule store.
func (c *commandContext) newEngine() (*engine.Engine, *rules.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	client, err := c.newClient()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.openRules()
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(client, store, expect.Static(cfg.Expectations), cfg.XNAT.Project, logger)
	return eng, store, nil
}
