package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"lumina"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.NotEmpty(t, c.StoreURL)
	assert.NotEmpty(t, c.StoreAnonKey)
	assert.Equal(t, 2*time.Second, c.DebounceWindow)
	assert.Equal(t, 5*time.Second, c.StabilityWindow)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, ".lumina", filepath.Base(c.CacheDir))
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	resetArgs(t)
	t.Setenv("LUMINA_STORE_URL", "https://env.example")
	t.Setenv("LUMINA_STORE_ANON_KEY", "env-key")
	t.Setenv("LUMINA_CACHE_DIR", "/tmp/env-cache")

	c := LoadConfig()
	assert.Equal(t, "https://env.example", c.StoreURL)
	assert.Equal(t, "env-key", c.StoreAnonKey)
	assert.Equal(t, "/tmp/env-cache", c.CacheDir)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	resetArgs(t, "-u", "https://flag.example", "-k", "flag-key", "-d", "/tmp/flag-cache", "-i", "7")

	c := LoadConfig()
	assert.Equal(t, "https://flag.example", c.StoreURL)
	assert.Equal(t, "flag-key", c.StoreAnonKey)
	assert.Equal(t, "/tmp/flag-cache", c.CacheDir)
	assert.Equal(t, 7*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfigFlagsBeatEnv(t *testing.T) {
	resetArgs(t, "-u", "https://flag.example")
	t.Setenv("LUMINA_STORE_URL", "https://env.example")

	c := LoadConfig()
	assert.Equal(t, "https://flag.example", c.StoreURL)
}

func TestLoadConfigJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"store_url": "https://json.example",
		"debounce_window": "3s",
		"stability_window": 8000000000
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	resetArgs(t, "-c", path)

	c := LoadConfig()
	assert.Equal(t, "https://json.example", c.StoreURL)
	assert.Equal(t, 3*time.Second, c.DebounceWindow)
	assert.Equal(t, 8*time.Second, c.StabilityWindow)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfigEnvBeatsJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store_url": "https://json.example"}`), 0o600))
	resetArgs(t, "-c", path)
	t.Setenv("LUMINA_STORE_URL", "https://env.example")

	c := LoadConfig()
	assert.Equal(t, "https://env.example", c.StoreURL)
}
