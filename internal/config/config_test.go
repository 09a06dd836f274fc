package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, Validate(&cfg))
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"bad model":        func(c *Config) { c.Model = "gigantic" },
		"bad language":     func(c *Config) { c.Language = "klingon" },
		"bad engine":       func(c *Config) { c.Engine = "local" },
		"bad sample rate":  func(c *Config) { c.SampleRate = 0 },
		"bad channels":     func(c *Config) { c.Channels = 9 },
		"bad device":       func(c *Config) { c.Device = -2 },
		"bad min duration": func(c *Config) { c.MinDuration = -1 },
		"bad max retry":    func(c *Config) { c.MaxRetry = 0 },
		"empty hotkey":     func(c *Config) { c.Hotkey = "" },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, Validate(&cfg), name)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MODEL":"small","LANGUAGE":"english","DEVICE":3}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "small", cfg.Model)
	assert.Equal(t, "english", cfg.Language)
	assert.Equal(t, 3, cfg.Device)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fv := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--model", "tiny", "--terminal-mode"}))
	ApplyFlags(&cfg, fv)

	// Only explicitly-set flags override the file.
	assert.Equal(t, "tiny", cfg.Model)
	assert.True(t, cfg.TerminalMode)
	assert.Equal(t, "english", cfg.Language)
	assert.Equal(t, 3, cfg.Device)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitCacheDirCreatesDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	InitCacheDir(&cfg)

	require.NotEmpty(t, cfg.CacheDir)
	info, err := os.Stat(cfg.CacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitCacheDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	cfg := DefaultConfig()
	cfg.CacheDir = path
	InitCacheDir(&cfg)
	assert.Empty(t, cfg.CacheDir)
}
