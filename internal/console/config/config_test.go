package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://192.168.4.1", c.DeviceURL)
	assert.Equal(t, "sprinklerctl.db", filepath.Base(c.DatabaseFile))
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	orig := os.Args
	os.Args = []string{"sprinklerctl"}
	defer func() { os.Args = orig }()

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://192.168.4.1", cfg.DeviceURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	orig := os.Args
	os.Args = []string{"sprinklerctl", "-d", "http://10.0.0.5", "-t", "5"}
	defer func() { os.Args = orig }()

	cfg := LoadConfig()

	assert.Equal(t, "http://10.0.0.5", cfg.DeviceURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "sprinklerctl.db", filepath.Base(cfg.DatabaseFile))
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"device_url":"http://device.local","database_file":"creds.db","request_timeout":"10s"}`), 0o600))

	orig := os.Args
	os.Args = []string{"sprinklerctl", "-c", path}
	defer func() { os.Args = orig }()

	cfg := LoadConfig()

	assert.Equal(t, "http://device.local", cfg.DeviceURL)
	assert.Equal(t, "creds.db", cfg.DatabaseFile)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsBeatJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"device_url":"http://device.local"}`), 0o600))

	orig := os.Args
	os.Args = []string{"sprinklerctl", "-c", path, "-d", "http://flag.local"}
	defer func() { os.Args = orig }()

	cfg := LoadConfig()

	assert.Equal(t, "http://flag.local", cfg.DeviceURL)
}
