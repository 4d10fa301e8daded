// Package config handles the launcher configuration file: location
// resolution, multi-format parsing, defaults, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FlameConfig configures the mod catalog client.
type FlameConfig struct {
	APIKey  string `yaml:"api_key,omitempty" toml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url,omitempty" json:"base_url,omitempty"`
	GameID  int    `yaml:"game_id,omitempty" toml:"game_id,omitempty" json:"game_id,omitempty"`
}

// Config is the parsed launcher configuration.
type Config struct {
	// AppDir holds the launcher and updater binaries. Defaults to the
	// directory of the running executable.
	AppDir string `yaml:"app_dir,omitempty" toml:"app_dir,omitempty" json:"app_dir,omitempty"`
	// DataDir holds the managed installation and the preferences file.
	// Defaults to the platform data home.
	DataDir string `yaml:"data_dir,omitempty" toml:"data_dir,omitempty" json:"data_dir,omitempty"`
	// UpdaterBinary overrides the base name of the updater helper.
	UpdaterBinary string `yaml:"updater_binary,omitempty" toml:"updater_binary,omitempty" json:"updater_binary,omitempty"`

	Flame FlameConfig `yaml:"flame,omitempty" toml:"flame,omitempty" json:"flame,omitempty"`
}

// FindConfig searches for a configuration file in the standard locations.
// Returns an empty path (and nil error) when no file exists; the launcher
// then runs on defaults.
func FindConfig(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified config not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv("LODESTONE_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	searchPaths := []string{
		filepath.Join(xdgConfig, "lodestone"),
		filepath.Join(home, ".lodestone"),
		home,
	}

	fileNames := []string{
		"lodestone.yaml",
		"lodestone.yml",
		"lodestone.toml",
		"lodestone.json",
		".lodestone.yaml",
		".lodestone.toml",
	}

	for _, dir := range searchPaths {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", nil
}

// Load reads and parses a configuration file and applies defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	cfg, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() error {
	if c.AppDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
		c.AppDir = filepath.Dir(exe)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to determine home directory: %w", err)
		}
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		c.DataDir = filepath.Join(dataHome, "lodestone")
	}
	if c.Flame.BaseURL == "" {
		c.Flame.BaseURL = defaultFlameBaseURL
	}
	if c.Flame.GameID == 0 {
		c.Flame.GameID = defaultFlameGameID
	}
	return nil
}

const (
	defaultFlameBaseURL = "https://api.curseforge.com"
	defaultFlameGameID  = 432
)

// validate rejects configurations that cannot work.
func (c *Config) validate() error {
	if c.AppDir == "" {
		return fmt.Errorf("app_dir must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Flame.GameID < 0 {
		return fmt.Errorf("flame.game_id must not be negative")
	}
	return nil
}
