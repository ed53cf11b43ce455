package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ScannerConfig contains defaults for the credential-discovery
// scanners.
type ScannerConfig struct {
	// AWSRegion overrides the SDK's default region resolution.
	AWSRegion string `toml:"aws_region,omitempty"`

	// GitHubHost points the GitHub scanner at an enterprise instance.
	// Empty means api.github.com.
	GitHubHost string `toml:"github_host,omitempty"`
}

// Config represents the keywarden CLI configuration.
type Config struct {
	// StorePath overrides the default credential-store location.
	StorePath string `toml:"store_path,omitempty"`

	// Tier is the default tier applied by 'keywarden init': "free" or "pro".
	Tier string `toml:"tier,omitempty"`

	// NoColor disables ANSI colors in terminal output.
	NoColor bool `toml:"no_color,omitempty"`

	// Scanner contains scanner defaults.
	Scanner ScannerConfig `toml:"scanner,omitempty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Tier: "free",
	}
}

// Load loads configuration from files, with the following precedence:
// 1. Local .keywardenrc file (in current directory)
// 2. Global ~/.keywardenrc config file
// 3. Default values
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try global config first (lower precedence)
	globalPath, err := GlobalConfigPath()
	if err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Try local config (higher precedence, overwrites global)
	localPath := LocalConfigPath()
	if data, err := os.ReadFile(localPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LocalConfigPath returns the path to the local config file
func LocalConfigPath() string {
	return ".keywardenrc"
}

// GlobalConfigPath returns the path to the global config file
// Uses ~/.keywardenrc on all platforms for consistency
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".keywardenrc"), nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the global config file
func (c *Config) Save() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
