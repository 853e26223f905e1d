package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DefinitionPath is a diagram file or a directory of them (hcl or yaml).
	DefinitionPath string
	// Addr is the listen address of the serve flow.
	Addr string

	LogFormat string
	LogLevel  string

	// ShowConnectors and ShowItems add tables to rendered output.
	ShowConnectors bool
	ShowItems      bool
	// CheckInvariants validates the whole workflow after every mutation.
	CheckInvariants bool
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = FormatText
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat != FormatText && cfg.LogFormat != FormatJSON {
		return nil, fmt.Errorf("invalid log-format %q: must be %q or %q", cfg.LogFormat, FormatText, FormatJSON)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// requireDefinition reports a missing definition path.
func (c *Config) requireDefinition() error {
	if c.DefinitionPath == "" {
		return errors.New("a diagram definition path is required")
	}
	return nil
}
