package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateXNAT(); err != nil {
		return err
	}
	if err := c.validateExpectations(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateXNAT() error {
	if c.XNAT.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/scantidy/config.toml"
		}
		return fmt.Errorf("xnat.base_url is required; edit %s (create with 'scantidy config init')", defaultPath)
	}
	parsed, err := url.Parse(c.XNAT.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("xnat.base_url %q is not an absolute URL", c.XNAT.BaseURL)
	}
	if c.XNAT.Project == "" {
		return errors.New("xnat.project must be set")
	}
	if c.XNAT.Token == "" && (c.XNAT.Username == "" || c.XNAT.Password == "") {
		return errors.New("xnat credentials required: set xnat.token or xnat.username plus xnat.password (or the XNAT_TOKEN / XNAT_PASSWORD env vars)")
	}
	return nil
}

func (c *Config) validateExpectations() error {
	for modality, frames := range c.Expectations {
		if frames <= 0 {
			return fmt.Errorf("expectations.%s must be a positive frame count, got %d", strings.ToLower(modality), frames)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
