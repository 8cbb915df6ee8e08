package odooforgecli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configDirName = ".odooforge-cli"

// ScriptConfig holds settings for the provisioning script invocation.
type ScriptConfig struct {
	Path        string `yaml:"path,omitempty"` // absolute path; empty = next to the executable
	Interpreter string `yaml:"interpreter"`
}

// Config holds all odooforge-cli configuration.
type Config struct {
	TargetDir      string       `yaml:"target_dir"`
	Organization   string       `yaml:"organization"`
	Versions       []string     `yaml:"versions"`
	DefaultVersion string       `yaml:"default_version"`
	ListLimit      int          `yaml:"list_limit"`
	Script         ScriptConfig `yaml:"script"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		TargetDir:      filepath.Join(home, "odoo_projects"),
		Organization:   "AbstractiveOdooPartner",
		Versions:       []string{"master", "19.0", "18.0", "17.0", "16.0", "14.0"},
		DefaultVersion: "18.0",
		ListLimit:      100,
		Script: ScriptConfig{
			Interpreter: "bash",
		},
	}
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, configDirName, "config.yaml")
}

// LoadConfig reads config from file, falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("ODOOFORGE_ORG"); v != "" {
		cfg.Organization = v
	}
	if v := os.Getenv("ODOOFORGE_TARGET_DIR"); v != "" {
		cfg.TargetDir = v
	}
	if v := os.Getenv("ODOOFORGE_SCRIPT"); v != "" {
		cfg.Script.Path = v
	}

	cfg.TargetDir = expandHome(cfg.TargetDir)
	cfg.Script.Path = expandHome(cfg.Script.Path)

	// A config file can hollow these out; repair rather than fail.
	if len(cfg.Versions) == 0 {
		cfg.Versions = DefaultConfig().Versions
	}
	if !containsVersion(cfg.Versions, cfg.DefaultVersion) {
		cfg.DefaultVersion = cfg.Versions[0]
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultConfig().ListLimit
	}
	if cfg.Script.Interpreter == "" {
		cfg.Script.Interpreter = DefaultConfig().Script.Interpreter
	}

	return cfg, nil
}

// SaveConfig writes config to the given path.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ConfigFileExists reports whether the config file exists at the given path.
func ConfigFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandHome replaces a leading "~/" with the user's home directory so config
// files can use the same notation as the shell.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

func containsVersion(versions []string, v string) bool {
	for _, have := range versions {
		if have == v {
			return true
		}
	}
	return false
}
