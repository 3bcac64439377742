package config

import (
	"errors"
	"fmt"
	"strings"
)

var validActions = map[string]struct{}{
	"report-only": {},
	"hard-link":   {},
	"sym-link":    {},
	"relocate":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TrashDir) == "" {
		return errors.New("paths.trash_dir must be set when the relocate action is used")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Jobs < 0 {
		return errors.New("scan.jobs must be zero (auto) or positive")
	}
	if _, ok := validActions[c.Scan.Action]; !ok {
		return fmt.Errorf("scan.action must be one of report-only, hard-link, sym-link, relocate (got %q)", c.Scan.Action)
	}
	return nil
}

func (c *Config) validateTools() error {
	tools := map[string]string{
		"tools.exiftool": c.Tools.Exiftool,
		"tools.magick":   c.Tools.Magick,
		"tools.dcraw":    c.Tools.Dcraw,
		"tools.ffmpeg":   c.Tools.FFmpeg,
		"tools.ffprobe":  c.Tools.FFprobe,
	}
	for key, value := range tools {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
