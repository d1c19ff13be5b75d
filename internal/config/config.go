package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for ttyAnchor. Every field has a working
// default, so the tool runs without any config file at all.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Journal JournalConfig `yaml:"journal"`
	Logging LoggingConfig `yaml:"logging"`
}

// RulesConfig locates the udev rule directory and the naming convention for
// the files this tool owns.
type RulesConfig struct {
	Dir      string `yaml:"dir"`      // rule directory, default /etc/udev/rules.d
	DevDir   string `yaml:"dev_dir"`  // where symlinks materialize, default /dev
	Prefix   string `yaml:"prefix"`   // identifying substring in file names
	Priority int    `yaml:"priority"` // numeric file name prefix
}

// JournalConfig controls the local operation journal. An empty path
// disables it.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			Dir:      "/etc/udev/rules.d",
			DevDir:   "/dev",
			Prefix:   "ttyanchor",
			Priority: 99,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file and merges it over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Re-fill anything the file left blank.
	def := Default()
	if cfg.Rules.Dir == "" {
		cfg.Rules.Dir = def.Rules.Dir
	}
	if cfg.Rules.DevDir == "" {
		cfg.Rules.DevDir = def.Rules.DevDir
	}
	if cfg.Rules.Prefix == "" {
		cfg.Rules.Prefix = def.Rules.Prefix
	}
	if cfg.Rules.Priority <= 0 {
		cfg.Rules.Priority = def.Rules.Priority
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	return cfg, nil
}
