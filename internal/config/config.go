package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	TrashDir string `toml:"trash_dir"`
}

// Scan contains scheduling and disposition defaults for a scan run.
type Scan struct {
	Jobs   int    `toml:"jobs"`
	Action string `toml:"action"`
}

// Tools contains the external normalization binaries. Each value may be a
// bare command name (resolved via PATH) or an absolute path.
type Tools struct {
	Exiftool string `toml:"exiftool"`
	Magick   string `toml:"magick"`
	Dcraw    string `toml:"dcraw"`
	FFmpeg   string `toml:"ffmpeg"`
	FFprobe  string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for winnow.
//
// Configuration sections by subsystem:
//   - Paths: cache database, reports, skip log, and trash locations
//   - Scan: worker concurrency and default disposition
//   - Tools: external normalization tool overrides
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Scan    Scan    `toml:"scan"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/winnow/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return value
// is the resolved config path and the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(defaultString(c.Paths.DataDir, defaultDataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(defaultString(c.Paths.LogDir, defaultLogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.TrashDir, err = expandPath(defaultString(c.Paths.TrashDir, defaultTrashDir)); err != nil {
		return fmt.Errorf("paths.trash_dir: %w", err)
	}

	c.Scan.Action = strings.ToLower(strings.TrimSpace(defaultString(c.Scan.Action, defaultAction)))

	c.Tools.Exiftool = defaultString(c.Tools.Exiftool, defaultExiftool)
	c.Tools.Magick = defaultString(c.Tools.Magick, defaultMagick)
	c.Tools.Dcraw = defaultString(c.Tools.Dcraw, defaultDcraw)
	c.Tools.FFmpeg = defaultString(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = defaultString(c.Tools.FFprobe, defaultFFprobe)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(defaultString(c.Logging.Format, defaultLogFormat)))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(defaultString(c.Logging.Level, defaultLogLevel)))
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// EnsureDirectories creates the configured directories if they do not exist.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CacheDBPath returns the default location of the hash cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.Paths.DataDir, "hashcache.db")
}

// SkipLogPath returns the location of the append-only skip log.
func (c *Config) SkipLogPath() string {
	return filepath.Join(c.Paths.LogDir, "skipped.log")
}

// ReportDir returns the directory scan reports are written to.
func (c *Config) ReportDir() string {
	return filepath.Join(c.Paths.DataDir, "reports")
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to the target path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
