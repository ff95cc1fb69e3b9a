package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSessionTTL = 24 * time.Hour

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	DBPath                 string `yaml:"db_path,omitempty" json:"db_path,omitempty"`
	ReminderDays           int    `yaml:"reminder_days,omitempty" json:"reminder_days,omitempty"`
	RevalidateOnReactivate bool   `yaml:"revalidate_on_reactivate,omitempty" json:"revalidate_on_reactivate,omitempty"`
	SessionTTL             string `yaml:"session_ttl,omitempty" json:"session_ttl,omitempty"`
}

// sessionTTL parses SessionTTL, defaulting to 24h.
func (c CLIConfig) sessionTTL() (time.Duration, error) {
	if c.SessionTTL == "" {
		return defaultSessionTTL, nil
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid session_ttl %q: %w", c.SessionTTL, err)
	}
	return d, nil
}

// set updates one field by its YAML key.
func (c *CLIConfig) set(key, value string) error {
	switch key {
	case "db_path":
		c.DBPath = value
	case "reminder_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("reminder_days must be a non-negative number, got %q", value)
		}
		c.ReminderDays = n
	case "revalidate_on_reactivate":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("revalidate_on_reactivate must be true or false, got %q", value)
		}
		c.RevalidateOnReactivate = b
	case "session_ttl":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("session_ttl must be a duration like 12h, got %q", value)
		}
		c.SessionTTL = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gr", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
