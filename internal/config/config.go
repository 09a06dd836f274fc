// Package config holds the runtime configuration: JSON config file merged
// with command-line flags, validated before any hardware or hook resource is
// acquired.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/torstefan/mic-transcribe/internal/engine"
)

// Config holds configurable parameters.
type Config struct {
	Engine         string  `json:"ENGINE"`
	Endpoint       string  `json:"API_ENDPOINT"`
	Token          string  `json:"TOKEN"`
	Model          string  `json:"MODEL"`
	Language       string  `json:"LANGUAGE"`
	Prompt         string  `json:"PROMPT"`
	TextPath       string  `json:"TEXT_PATH"`
	Device         int     `json:"DEVICE"`
	SampleRate     int     `json:"SAMPLE_RATE"`
	Channels       int     `json:"CHANNELS"`
	Hotkey         string  `json:"HOTKEY"`
	MinDuration    float64 `json:"MIN_DURATION"`
	RequestTimeout int     `json:"REQUEST_TIMEOUT"`
	MaxRetry       int     `json:"MAX_RETRY"`
	RetryBaseDelay float64 `json:"RETRY_BASE_DELAY"`
	EnableHTTP2    bool    `json:"ENABLE_HTTP2"`
	VerifySSL      bool    `json:"VERIFY_SSL"`
	TerminalMode   bool    `json:"TERMINAL_MODE"`
	Notification   bool    `json:"NOTIFICATION"`
	CacheDir       string  `json:"CACHE_DIR"`
	KeepCache      bool    `json:"KEEP_CACHE"`
	Debug          bool    `json:"DEBUG"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Engine:         "server",
		Endpoint:       "",
		Token:          "",
		Model:          "medium",
		Language:       "auto",
		Prompt:         "",
		TextPath:       "text",
		Device:         -1,
		SampleRate:     16000,
		Channels:       1,
		Hotkey:         "ctrl+shift+space",
		MinDuration:    0.5,
		RequestTimeout: 30,
		MaxRetry:       3,
		RetryBaseDelay: 0.5,
		EnableHTTP2:    true,
		VerifySSL:      true,
		TerminalMode:   false,
		Notification:   false,
		CacheDir:       "",
		KeepCache:      false,
		Debug:          false,
	}
}

// Load loads config from a JSON file if a path is provided.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config '%s' failed: %w", path, err)
	}
	return cfg, nil
}

// SaveDefault writes a default config JSON to the provided path.
func SaveDefault(path string) error {
	b, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate verifies config fields. It runs before any device or hook is
// opened so bad choices fail fast.
func Validate(cfg *Config) error {
	if _, err := engine.ParseModel(cfg.Model); err != nil {
		return err
	}
	if _, err := engine.ParseLanguage(cfg.Language); err != nil {
		return err
	}
	switch cfg.Engine {
	case "server", "openai":
	default:
		return fmt.Errorf("invalid engine '%s' (allowed: server, openai)", cfg.Engine)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d (must be > 0)", cfg.SampleRate)
	}
	if cfg.Channels < 1 || cfg.Channels > 8 {
		return fmt.Errorf("invalid channels: %d (allowed 1..8)", cfg.Channels)
	}
	if cfg.Device < -1 {
		return fmt.Errorf("invalid device index: %d", cfg.Device)
	}
	if cfg.MinDuration < 0 {
		return fmt.Errorf("invalid min duration: %v (must be >= 0)", cfg.MinDuration)
	}
	if cfg.MaxRetry < 1 {
		return fmt.Errorf("invalid max retry: %d (must be >= 1)", cfg.MaxRetry)
	}
	if cfg.Hotkey == "" {
		return fmt.Errorf("hotkey must not be empty")
	}
	return nil
}

// InitCacheDir validates/creates the configured cache directory. It mutates
// cfg.CacheDir to an absolute path or clears it on failure.
func InitCacheDir(cfg *Config) {
	if cfg.CacheDir == "" {
		return
	}
	abs, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		fmt.Printf("[main] cache-dir path invalid '%s': %v. Cache disabled.\n", cfg.CacheDir, err)
		cfg.CacheDir = ""
		return
	}
	if info, err := os.Stat(abs); err == nil {
		if !info.IsDir() {
			fmt.Printf("[main] cache-dir '%s' is not a directory. Cache disabled.\n", abs)
			cfg.CacheDir = ""
			return
		}
		cfg.CacheDir = abs
		return
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		fmt.Printf("[main] cannot create cache-dir '%s': %v. Cache disabled.\n", abs, err)
		cfg.CacheDir = ""
		return
	}
	cfg.CacheDir = abs
}

// TempDir returns the directory for temporary recordings.
func TempDir(cfg *Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	return os.TempDir()
}
