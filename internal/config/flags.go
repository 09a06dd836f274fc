package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// FlagValues holds parsed flags with explicit set tracking, so that only
// flags the user actually passed override config-file values.
type FlagValues struct {
	Engine            string
	EngineSet         bool
	Endpoint          string
	EndpointSet       bool
	Token             string
	TokenSet          bool
	Model             string
	ModelSet          bool
	Language          string
	LanguageSet       bool
	Prompt            string
	PromptSet         bool
	TextPath          string
	TextPathSet       bool
	Device            int
	DeviceSet         bool
	SampleRate        int
	SampleRateSet     bool
	Channels          int
	ChannelsSet       bool
	Hotkey            string
	HotkeySet         bool
	MinDuration       float64
	MinDurationSet    bool
	RequestTimeout    int
	RequestTimeoutSet bool
	MaxRetry          int
	MaxRetrySet       bool
	RetryBaseDelay    float64
	RetryBaseDelaySet bool
	EnableHTTP2       bool
	EnableHTTP2Set    bool
	VerifySSL         bool
	VerifySSLSet      bool
	TerminalMode      bool
	TerminalModeSet   bool
	Notification      bool
	NotificationSet   bool
	CacheDir          string
	CacheDirSet       bool
	KeepCache         bool
	KeepCacheSet      bool
	Debug             bool
	DebugSet          bool
}

type stringFlag struct {
	target *string
	set    *bool
}

func (s *stringFlag) String() string {
	if s == nil || s.target == nil {
		return ""
	}
	return *s.target
}

func (s *stringFlag) Set(v string) error {
	*s.target = v
	*s.set = true
	return nil
}

type intFlag struct {
	target *int
	set    *bool
}

func (i *intFlag) String() string {
	if i == nil || i.target == nil {
		return ""
	}
	return strconv.Itoa(*i.target)
}

func (i *intFlag) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*i.target = n
	*i.set = true
	return nil
}

type floatFlag struct {
	target *float64
	set    *bool
}

func (f *floatFlag) String() string {
	if f == nil || f.target == nil {
		return ""
	}
	return fmt.Sprintf("%v", *f.target)
}

func (f *floatFlag) Set(v string) error {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*f.target = n
	*f.set = true
	return nil
}

type boolFlag struct {
	target *bool
	set    *bool
}

func (b *boolFlag) String() string {
	if b == nil || b.target == nil {
		return ""
	}
	return strconv.FormatBool(*b.target)
}

func (b *boolFlag) Set(v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "":
		*b.target = true
	case "0", "false", "no", "n":
		*b.target = false
	default:
		return fmt.Errorf("invalid boolean: %s", v)
	}
	*b.set = true
	return nil
}

func (b *boolFlag) IsBoolFlag() bool { return true }

// BindFlags registers all config flags and returns the populated FlagValues.
func BindFlags(fs *flag.FlagSet) *FlagValues {
	fv := &FlagValues{}

	fs.Var(&stringFlag{&fv.Engine, &fv.EngineSet}, "engine", "engine backend (server, openai)")
	fs.Var(&stringFlag{&fv.Endpoint, &fv.EndpointSet}, "endpoint", "engine endpoint URL")
	fs.Var(&stringFlag{&fv.Token, &fv.TokenSet}, "token", "authorization token")
	fs.Var(&stringFlag{&fv.Model, &fv.ModelSet}, "model", "model size (tiny, base, small, medium, large, turbo)")
	fs.Var(&stringFlag{&fv.Language, &fv.LanguageSet}, "language", "language (auto, english, norwegian)")
	fs.Var(&stringFlag{&fv.Prompt, &fv.PromptSet}, "prompt", "initial prompt forwarded to the engine")
	fs.Var(&stringFlag{&fv.TextPath, &fv.TextPathSet}, "text-path", "JSON path to extract text from server responses")

	fs.Var(&intFlag{&fv.Device, &fv.DeviceSet}, "device", "input device index (-1 for default)")
	fs.Var(&intFlag{&fv.SampleRate, &fv.SampleRateSet}, "sample-rate", "sample rate (Hz)")
	fs.Var(&intFlag{&fv.Channels, &fv.ChannelsSet}, "channels", "input channels")

	fs.Var(&stringFlag{&fv.Hotkey, &fv.HotkeySet}, "hotkey", "push-to-talk hotkey (e.g. ctrl+shift+space)")
	fs.Var(&floatFlag{&fv.MinDuration, &fv.MinDurationSet}, "min-duration", "shortest recording to transcribe (seconds)")

	fs.Var(&intFlag{&fv.RequestTimeout, &fv.RequestTimeoutSet}, "request-timeout", "engine request timeout (seconds)")
	fs.Var(&intFlag{&fv.MaxRetry, &fv.MaxRetrySet}, "max-retry", "max upload attempts")
	fs.Var(&floatFlag{&fv.RetryBaseDelay, &fv.RetryBaseDelaySet}, "retry-base-delay", "retry base delay (seconds)")
	fs.Var(&boolFlag{&fv.EnableHTTP2, &fv.EnableHTTP2Set}, "enable-http2", "enable HTTP/2")
	fs.Var(&boolFlag{&fv.VerifySSL, &fv.VerifySSLSet}, "verify-ssl", "verify TLS certificates")

	fs.Var(&boolFlag{&fv.TerminalMode, &fv.TerminalModeSet}, "terminal-mode", "type text as keystrokes instead of pasting")
	fs.Var(&boolFlag{&fv.Notification, &fv.NotificationSet}, "notification", "enable desktop notifications")

	fs.Var(&stringFlag{&fv.CacheDir, &fv.CacheDirSet}, "cache-dir", "cache directory for kept recordings")
	fs.Var(&boolFlag{&fv.KeepCache, &fv.KeepCacheSet}, "keep-cache", "keep recordings and raw responses")

	fs.Var(&boolFlag{&fv.Debug, &fv.DebugSet}, "debug", "enable debug output (incl. raw key codes)")

	return fv
}

// ApplyFlags applies explicitly-set flags to the config.
func ApplyFlags(cfg *Config, fv *FlagValues) {
	if fv.EngineSet {
		cfg.Engine = fv.Engine
	}
	if fv.EndpointSet {
		cfg.Endpoint = fv.Endpoint
	}
	if fv.TokenSet {
		cfg.Token = fv.Token
	}
	if fv.ModelSet {
		cfg.Model = fv.Model
	}
	if fv.LanguageSet {
		cfg.Language = fv.Language
	}
	if fv.PromptSet {
		cfg.Prompt = fv.Prompt
	}
	if fv.TextPathSet {
		cfg.TextPath = fv.TextPath
	}
	if fv.DeviceSet {
		cfg.Device = fv.Device
	}
	if fv.SampleRateSet {
		cfg.SampleRate = fv.SampleRate
	}
	if fv.ChannelsSet {
		cfg.Channels = fv.Channels
	}
	if fv.HotkeySet {
		cfg.Hotkey = fv.Hotkey
	}
	if fv.MinDurationSet {
		cfg.MinDuration = fv.MinDuration
	}
	if fv.RequestTimeoutSet {
		cfg.RequestTimeout = fv.RequestTimeout
	}
	if fv.MaxRetrySet {
		cfg.MaxRetry = fv.MaxRetry
	}
	if fv.RetryBaseDelaySet {
		cfg.RetryBaseDelay = fv.RetryBaseDelay
	}
	if fv.EnableHTTP2Set {
		cfg.EnableHTTP2 = fv.EnableHTTP2
	}
	if fv.VerifySSLSet {
		cfg.VerifySSL = fv.VerifySSL
	}
	if fv.TerminalModeSet {
		cfg.TerminalMode = fv.TerminalMode
	}
	if fv.NotificationSet {
		cfg.Notification = fv.Notification
	}
	if fv.CacheDirSet {
		cfg.CacheDir = fv.CacheDir
	}
	if fv.KeepCacheSet {
		cfg.KeepCache = fv.KeepCache
	}
	if fv.DebugSet {
		cfg.Debug = fv.Debug
	}
}
