package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "numform"
	configFile = "config.yaml"
)

// Config is the persisted form configuration. Only configuration is stored;
// field values never are. Bounds are kept in their configuration form (the
// "*" sentinel or a numeric literal) and parsed by the consuming field.
type Config struct {
	Version  int    `yaml:"version"`
	Fields   int    `yaml:"fields"`   // number of entry fields in the form
	Min      string `yaml:"min"`      // lower bound, "*" = unbounded
	Max      string `yaml:"max"`      // upper bound, "*" = unbounded
	Step     string `yaml:"step"`     // wheel step, "*" = wheel disabled
	Decimals int    `yaml:"decimals"` // fraction digits in settled values
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:  1,
		Fields:   4,
		Min:      "*",
		Max:      "*",
		Step:     "*",
		Decimals: 2,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/numform or $HOME/.config/numform
//   - macOS: $HOME/.config/numform (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\numform
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems: XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration file, returning defaults when it does not
// exist. A malformed file is an error rather than a silent reset, so a typo
// never wipes the user's settings.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Fields < 1 {
		cfg.Fields = Default().Fields
	}
	if cfg.Decimals < 0 {
		cfg.Decimals = Default().Decimals
	}

	return cfg, nil
}

// Save writes the configuration file, creating the config directory with
// user-only permissions if needed.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, configFile)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
