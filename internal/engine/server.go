package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/torstefan/mic-transcribe/internal/capture"
)

// RetryExhaustedError reports that every upload attempt against the engine
// endpoint failed.
type RetryExhaustedError struct {
	Attempts     int
	MaxRetry     int
	LastResponse []byte
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("engine request failed after %d/%d attempts: %s",
		e.Attempts, e.MaxRetry, truncate(e.LastResponse, 200))
}

func truncate(b []byte, n int) string {
	if len(b) == 0 {
		return "<empty>"
	}
	if len(b) > n {
		return fmt.Sprintf("%s... (%d bytes)", b[:n], len(b))
	}
	return string(b)
}

// ServerOptions configures a ServerClient.
type ServerOptions struct {
	Endpoint       string
	Token          string
	TextPath       string
	Prompt         string
	Model          Model
	Language       Language
	MaxRetry       int
	RetryBaseDelay float64
	TempDir        string
	CacheDir       string
	Debug          bool
}

// ServerClient talks to a Whisper-server style HTTP endpoint: the clip is
// uploaded as a multipart WAV and the transcript extracted from the JSON
// response. Failed uploads are retried with exponential backoff.
type ServerClient struct {
	opts       ServerOptions
	httpClient *http.Client
	cache      *cache
}

// NewServer creates a server-backed engine client.
func NewServer(opts ServerOptions, httpClient *http.Client) (*ServerClient, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("engine endpoint is empty")
	}
	if opts.MaxRetry < 1 {
		opts.MaxRetry = 1
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ServerClient{opts: opts, httpClient: httpClient, cache: newCache(opts.CacheDir)}, nil
}

// Transcribe uploads the clip and returns the recognized text.
func (c *ServerClient) Transcribe(ctx context.Context, clip capture.Clip) (Result, error) {
	wavPath, err := writeClip(clip, c.opts.TempDir)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	text, raw, err := c.transcribeFile(ctx, wavPath)
	c.cache.finish(wavPath, raw, err == nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Language: c.opts.Language.Code(), Duration: time.Since(start)}, nil
}

// TranscribeFile uploads an existing audio file and returns the recognized
// text, for file mode.
func (c *ServerClient) TranscribeFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	text, _, err := c.transcribeFile(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Language: c.opts.Language.Code(), Duration: time.Since(start)}, nil
}

func (c *ServerClient) transcribeFile(ctx context.Context, path string) (string, []byte, error) {
	delay := c.opts.RetryBaseDelay
	var last []byte
	for attempt := 1; ; attempt++ {
		ok, resp := c.upload(ctx, path)
		last = resp
		if ok {
			return extractText(resp, c.opts.TextPath), resp, nil
		}
		if c.opts.Debug {
			fmt.Printf("[upload] attempt %d failed: %s\n", attempt, truncate(resp, 400))
		}
		if attempt >= c.opts.MaxRetry {
			return "", last, &RetryExhaustedError{
				Attempts:     attempt,
				MaxRetry:     c.opts.MaxRetry,
				LastResponse: last,
			}
		}
		select {
		case <-ctx.Done():
			return "", last, ctx.Err()
		case <-time.After(time.Duration(delay * float64(time.Second))):
		}
		delay *= 2
	}
}

func (c *ServerClient) upload(ctx context.Context, path string) (bool, []byte) {
	f, err := os.Open(path)
	if err != nil {
		return false, []byte(fmt.Sprintf("open file error: %v", err))
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return false, []byte(fmt.Sprintf("create form file error: %v", err))
	}
	if _, err := io.Copy(part, f); err != nil {
		return false, []byte(fmt.Sprintf("copy file error: %v", err))
	}
	if c.opts.Model != "" {
		_ = writer.WriteField("model", string(c.opts.Model))
	}
	if code := c.opts.Language.Code(); code != "" {
		_ = writer.WriteField("language", code)
	}
	if c.opts.Prompt != "" {
		_ = writer.WriteField("prompt", c.opts.Prompt)
	}
	_ = writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, body)
	if err != nil {
		return false, []byte(fmt.Sprintf("new request error: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}
	req.Header.Set("User-Agent", "mic-transcribe/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, []byte(fmt.Sprintf("request error: %v", err))
	}
	defer resp.Body.Close()
	if c.opts.Debug {
		fmt.Printf("[upload] request duration: %v\n", time.Since(start))
	}
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return false, respBody
	}
	return true, respBody
}
