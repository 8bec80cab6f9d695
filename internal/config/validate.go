package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtract() error {
	if strings.TrimSpace(c.Extract.OutputDir) == "" {
		return errors.New("extract.output_dir must be set")
	}
	if c.Extract.SamplingIntervalSeconds < 0 {
		return errors.New("extract.sampling_interval_seconds must be >= 0")
	}
	if c.Extract.ImageFormat != "png" {
		return fmt.Errorf("extract.image_format %q is not supported (only png)", c.Extract.ImageFormat)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set when catalog.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
