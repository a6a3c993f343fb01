package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	content := []byte(`
[log]
level = "debug"
stream = "stderr"

[tp]
port = 12137

[status]
addr = "127.0.0.1:8787"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Stream)
	// Unset keys keep their defaults.
	assert.Equal(t, PluginID+".log", cfg.Log.File)
	assert.Equal(t, "127.0.0.1", cfg.TP.Host)
	assert.Equal(t, 12137, cfg.TP.Port)
	assert.Equal(t, "127.0.0.1:8787", cfg.Status.Addr)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(path, []byte("[log\nlevel=?"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
