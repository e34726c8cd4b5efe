// Package config holds the blockweaver CLI configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/grahms/blockweaver"
)

// Config is decoded by viper from the config file, BLOCKWEAVER_* environment
// variables and flags.
type Config struct {
	Manifests     []string `mapstructure:"manifests"`      // HCL/YAML files or directories
	Locale        string   `mapstructure:"locale"`         // BCP 47 tag, e.g. "pt-PT"
	Translations  string   `mapstructure:"translations"`   // YAML catalog path
	Sanitize      bool     `mapstructure:"sanitize"`       // sanitize markup before extraction
	UnknownBlocks string   `mapstructure:"unknown_blocks"` // "placeholder" (default) or "strict"
	LogLevel      string   `mapstructure:"log_level"`      // debug, info, warn or error
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Locale:        "en",
		Sanitize:      false,
		UnknownBlocks: "placeholder",
		LogLevel:      "warn",
	}
}

// Validate checks enumerated settings. Empty values use defaults.
func (c Config) Validate() error {
	if _, err := blockweaver.ParseUnknownBlockPolicy(c.UnknownBlocks); err != nil {
		return fmt.Errorf("unknown_blocks must be \"placeholder\" or \"strict\", got %q", c.UnknownBlocks)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, m := range c.Manifests {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("manifests[%d] is empty", i)
		}
	}
	return nil
}

// Policy is the unknown block policy; call Validate first.
func (c Config) Policy() blockweaver.UnknownBlockPolicy {
	p, _ := blockweaver.ParseUnknownBlockPolicy(c.UnknownBlocks)
	return p
}

// Level is the configured log level; call Validate first.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
}
