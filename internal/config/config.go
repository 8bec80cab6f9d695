package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools contains executable overrides for the external media tools. Empty
// values resolve the tool name on PATH.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Extract contains configuration for frame extraction output.
type Extract struct {
	OutputDir               string  `toml:"output_dir"`
	SamplingIntervalSeconds float64 `toml:"sampling_interval_seconds"`
	ImageFormat             string  `toml:"image_format"`
}

// Catalog contains configuration for the extraction-run catalog.
type Catalog struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for framepipe.
type Config struct {
	Tools   Tools   `toml:"tools"`
	Extract Extract `toml:"extract"`
	Catalog Catalog `toml:"catalog"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/framepipe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file yields
// the defaults.
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
		_, err = os.Stat(expanded)
		if err != nil {
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

	projectPath, err := filepath.Abs("framepipe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// normalize expands user-relative paths to absolute ones.
func (c *Config) normalize() error {
	for _, field := range []*string{&c.Extract.OutputDir, &c.Catalog.Path, &c.Tools.FFmpeg, &c.Tools.FFprobe} {
		value := strings.TrimSpace(*field)
		if value == "" {
			*field = ""
			continue
		}
		// Bare tool names stay as-is so PATH resolution still applies.
		if field == &c.Tools.FFmpeg || field == &c.Tools.FFprobe {
			if !strings.ContainsAny(value, `/\~`) {
				*field = value
				continue
			}
		}
		expanded, err := expandPath(value)
		if err != nil {
			return err
		}
		*field = expanded
	}
	c.Extract.ImageFormat = strings.ToLower(strings.TrimSpace(c.Extract.ImageFormat))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// SamplingInterval returns the configured sampling interval as a duration.
func (c *Config) SamplingInterval() time.Duration {
	if c.Extract.SamplingIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Extract.SamplingIntervalSeconds * float64(time.Second))
}

// EnsureDirectories creates the directories extraction runs write into.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Extract.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Extract.OutputDir, err)
	}
	if c.Catalog.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Catalog.Path), 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
