// Package app wires the dictation pipeline together: hotkey watcher, capture
// session, session controller, engine client, and output dispatcher.
package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/http2"

	"github.com/torstefan/mic-transcribe/internal/capture"
	"github.com/torstefan/mic-transcribe/internal/config"
	"github.com/torstefan/mic-transcribe/internal/engine"
	"github.com/torstefan/mic-transcribe/internal/hotkey"
	"github.com/torstefan/mic-transcribe/internal/notify"
	"github.com/torstefan/mic-transcribe/internal/output"
	"github.com/torstefan/mic-transcribe/internal/session"
)

// RunRecordMode subscribes to the hotkey and runs the dictation loop until
// interrupted. A hotkey hook failure is fatal; everything else is per-session.
func RunRecordMode(cfg config.Config) error {
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	src, err := hotkey.NewGlobalSource(cfg.Hotkey)
	if err != nil {
		return err
	}
	watcher := hotkey.NewWatcher(src, src.Code(), cfg.Debug)

	rec := capture.NewSession(cfg.Device, cfg.SampleRate, cfg.Channels, cfg.Debug)
	disp := output.New(cfg.TerminalMode, cfg.Debug)

	opts := session.Options{
		MinDuration: time.Duration(cfg.MinDuration * float64(time.Second)),
		Timeout:     engineDeadline(cfg),
		Debug:       cfg.Debug,
	}
	if cfg.Notification {
		opts.Notify = notify.Notify
	}
	ctrl := session.NewController(rec, eng, disp, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Run(ctx) }()
	ctrlErr := make(chan error, 1)
	go func() { ctrlErr <- ctrl.Run(ctx, watcher.Signals()) }()

	fmt.Printf("[main] ready: hold %s to dictate, release to transcribe\n", cfg.Hotkey)

	select {
	case err := <-watchErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			// No recovery path: without the hook there is no way to dictate.
			return fmt.Errorf("hotkey hook failed: %w", err)
		}
	case err := <-ctrlErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	fmt.Println("[main] shutting down")
	return nil
}

// RunFileMode transcribes an existing audio file and writes the result to a
// .txt file next to it (or to outputPath).
func RunFileMode(cfg config.Config, inputPath, outputPath string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("file '%s' stat failed: %w", inputPath, err)
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), engineDeadline(cfg))
	defer cancel()
	res, err := eng.TranscribeFile(ctx, inputPath)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		out = base + ".txt"
	}
	if err := os.WriteFile(out, []byte(res.Text), 0644); err != nil {
		return err
	}
	fmt.Printf("[main] wrote transcript to %s (%v)\n", out, res.Duration.Round(time.Millisecond))
	return nil
}

// fileEngine is an engine that can also transcribe on-disk files.
type fileEngine interface {
	engine.Engine
	TranscribeFile(ctx context.Context, path string) (engine.Result, error)
}

func newEngine(cfg config.Config) (fileEngine, error) {
	lang, err := engine.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}
	model, err := engine.ParseModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	cacheDir := ""
	if cfg.KeepCache {
		cacheDir = cfg.CacheDir
	}

	switch cfg.Engine {
	case "openai":
		c, err := engine.NewOpenAI(engine.OpenAIOptions{
			Endpoint: cfg.Endpoint,
			Token:    cfg.Token,
			Prompt:   cfg.Prompt,
			Language: lang,
			TempDir:  config.TempDir(&cfg),
			CacheDir: cacheDir,
		}, newHTTPClient(cfg))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		c, err := engine.NewServer(engine.ServerOptions{
			Endpoint:       cfg.Endpoint,
			Token:          cfg.Token,
			TextPath:       cfg.TextPath,
			Prompt:         cfg.Prompt,
			Model:          model,
			Language:       lang,
			MaxRetry:       cfg.MaxRetry,
			RetryBaseDelay: cfg.RetryBaseDelay,
			TempDir:        config.TempDir(&cfg),
			CacheDir:       cacheDir,
			Debug:          cfg.Debug,
		}, newHTTPClient(cfg))
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// engineDeadline bounds one whole engine invocation including retries.
func engineDeadline(cfg config.Config) time.Duration {
	per := time.Duration(cfg.RequestTimeout) * time.Second
	return per*time.Duration(cfg.MaxRetry) + 10*time.Second
}

func newHTTPClient(cfg config.Config) *http.Client {
	tr := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if !cfg.VerifySSL {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.EnableHTTP2 {
		_ = http2.ConfigureTransport(tr)
	}
	return &http.Client{
		Transport: tr,
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
	}
}
