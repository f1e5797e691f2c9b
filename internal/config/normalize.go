package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeXNAT(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExpectations()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeXNAT() error {
	c.XNAT.BaseURL = strings.TrimRight(strings.TrimSpace(c.XNAT.BaseURL), "/")
	c.XNAT.Username = strings.TrimSpace(c.XNAT.Username)
	c.XNAT.Project = strings.TrimSpace(c.XNAT.Project)
	if c.XNAT.Password == "" {
		if value, ok := os.LookupEnv("XNAT_PASSWORD"); ok {
			c.XNAT.Password = value
		}
	}
	if c.XNAT.Token == "" {
		if value, ok := os.LookupEnv("XNAT_TOKEN"); ok {
			c.XNAT.Token = strings.TrimSpace(value)
		}
	}
	if c.XNAT.TimeoutSeconds <= 0 {
		c.XNAT.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Rules.DBPath) == "" {
		c.Rules.DBPath = defaultRulesDBPath
	}
	if c.Rules.DBPath, err = expandPath(c.Rules.DBPath); err != nil {
		return fmt.Errorf("rules.db_path: %w", err)
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}

// Expectation keys are matched against uppercase modality codes (MR, PET, CT).
func (c *Config) normalizeExpectations() {
	if len(c.Expectations) == 0 {
		return
	}
	normalized := make(map[string]int, len(c.Expectations))
	for modality, frames := range c.Expectations {
		key := strings.ToUpper(strings.TrimSpace(modality))
		if key == "" {
			continue
		}
		normalized[key] = frames
	}
	c.Expectations = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
