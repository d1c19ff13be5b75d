package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
rules:
  dir: /tmp/rules.d
  prefix: myprefix
  priority: 70
journal:
  path: /var/lib/ttyanchor/journal.db
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/rules.d", cfg.Rules.Dir)
	assert.Equal(t, "myprefix", cfg.Rules.Prefix)
	assert.Equal(t, 70, cfg.Rules.Priority)
	assert.Equal(t, "/var/lib/ttyanchor/journal.db", cfg.Journal.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields keep their defaults.
	assert.Equal(t, "/dev", cfg.Rules.DevDir)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/etc/udev/rules.d", cfg.Rules.Dir)
	assert.Equal(t, "ttyanchor", cfg.Rules.Prefix)
	assert.Equal(t, 99, cfg.Rules.Priority)
	assert.Empty(t, cfg.Journal.Path)
}
