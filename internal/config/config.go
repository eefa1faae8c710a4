// Package config loads the assembler's optional TOML configuration
// file. Absence of a file is not an error: DefaultConfig's values
// apply. Adapted from lookbusy1344-arm_emulator/config's shape
// (nested tagged structs, DefaultConfig/Load/LoadFrom/Save/SaveTo,
// GOOS-switched GetConfigPath) to this tool's two concerns: memory
// layout and diagnostics presentation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the assembler's runtime-overridable settings.
type Config struct {
	Memory struct {
		BaseAddress int `toml:"base_address"`
		Size        int `toml:"size"`
	} `toml:"memory"`

	Diagnostics struct {
		Color bool `toml:"color"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns the built-in settings: base address 100,
// combined code+data capacity 256, auto-detected color.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.BaseAddress = 100
	cfg.Memory.Size = 256
	cfg.Diagnostics.Color = true
	return cfg
}

// GetConfigPath returns the platform-specific default config file
// location: %APPDATA%\asm10\config.toml on Windows,
// ~/Library/Application Support/asm10/config.toml on Darwin, and
// $XDG_CONFIG_HOME/asm10/config.toml (or ~/.config/asm10/config.toml)
// elsewhere.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "asm10")

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, "Library", "Application Support", "asm10")

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "asm10")
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "config.toml"
			}
			configDir = filepath.Join(homeDir, ".config", "asm10")
		}
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling back
// to defaults if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, returning defaults
// unmodified if path does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config file location.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes c as TOML to path, creating its parent directory if
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
