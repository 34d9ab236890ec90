package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/boookk/bithumb-practice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default().Delay, c.Delay)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, config.FormatText, c.Format)
	assert.False(t, c.Debug)
	assert.Empty(t, c.Scenarios)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rx-tutorial.yml")
	content := `
debug: true
delay: 10ms
format: JSON
scenarios:
  - zip
  - search
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.Equal(t, 10*time.Millisecond, c.Delay)
	assert.Equal(t, config.FormatJSON, c.Format)
	assert.Equal(t, []string{"zip", "search"}, c.Scenarios)
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rx-tutorial.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"json\"\ntimeout = \"2s\"\n"), 0644))

	t.Setenv("RX_TUTORIAL_FORMAT", "cbor")
	c, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, config.FormatCBOR, c.Format, "env should override file")
	assert.Equal(t, 2*time.Second, c.Timeout)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RX_TUTORIAL_DELAY=250ms\n"), 0644))
	t.Cleanup(func() {
		_ = os.Unsetenv("RX_TUTORIAL_DELAY")
	})

	c, err := config.Load(config.WithEnvFile(path))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, c.Delay)

	_, err = config.Load(config.WithEnvFile(filepath.Join(dir, "missing.env")))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("RX_TUTORIAL_FORMAT", "xml")
	_, err := config.Load()
	assert.Error(t, err)

	_, err = config.Load(config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := config.Default()
	assert.NoError(t, c.Validate())
	c.Timeout = 0
	assert.Error(t, c.Validate())
	c = config.Default()
	c.Delay = -time.Second
	assert.Error(t, c.Validate())
	c.Delay = 0
	assert.Error(t, c.Validate(), "zero delay should be rejected")
}
