package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahms/blockweaver"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, blockweaver.UnknownPlaceholder, cfg.Policy())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.False(t, cfg.Sanitize)
	assert.Empty(t, cfg.Manifests)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"strict policy", func(c *Config) { c.UnknownBlocks = "strict" }, ""},
		{"empty policy falls back", func(c *Config) { c.UnknownBlocks = "" }, ""},
		{"bad policy", func(c *Config) { c.UnknownBlocks = "drop" }, "unknown_blocks"},
		{"debug level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"blank manifest", func(c *Config) { c.Manifests = []string{"blocks", " "} }, "manifests[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPolicyAndLevel(t *testing.T) {
	cfg := Config{UnknownBlocks: "strict", LogLevel: "error"}
	assert.Equal(t, blockweaver.UnknownStrict, cfg.Policy())
	assert.Equal(t, slog.LevelError, cfg.Level())

	cfg.LogLevel = "info"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
