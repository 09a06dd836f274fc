package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/torstefan/mic-transcribe/internal/capture"
)

// OpenAIOptions configures an OpenAIClient.
type OpenAIOptions struct {
	Endpoint string // optional base URL for OpenAI-compatible servers
	Token    string
	Prompt   string
	Language Language
	TempDir  string
	CacheDir string
}

// OpenAIClient transcribes via the OpenAI audio-transcription API (or any
// compatible server). Model size selectors do not apply here; the hosted
// whisper-1 model is used.
type OpenAIClient struct {
	client *openai.Client
	opts   OpenAIOptions
	cache  *cache
}

// NewOpenAI creates an OpenAI-backed engine client.
func NewOpenAI(opts OpenAIOptions, httpClient *http.Client) (*OpenAIClient, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("openai engine requires a token")
	}
	cfg := openai.DefaultConfig(opts.Token)
	if opts.Endpoint != "" {
		cfg.BaseURL = opts.Endpoint
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), opts: opts, cache: newCache(opts.CacheDir)}, nil
}

// Transcribe uploads the clip and returns the recognized text.
func (c *OpenAIClient) Transcribe(ctx context.Context, clip capture.Clip) (Result, error) {
	wavPath, err := writeClip(clip, c.opts.TempDir)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	res, err := c.transcribeFile(ctx, wavPath)
	c.cache.finish(wavPath, nil, err == nil)
	if err != nil {
		return Result{}, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

// TranscribeFile transcribes an existing audio file, for file mode.
func (c *OpenAIClient) TranscribeFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res, err := c.transcribeFile(ctx, path)
	if err != nil {
		return Result{}, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (c *OpenAIClient) transcribeFile(ctx context.Context, path string) (Result, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Language: c.opts.Language.Code(),
		Prompt:   c.opts.Prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := c.client.CreateTranscription(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("openai transcription failed: %w", err)
	}
	lang := resp.Language
	if lang == "" {
		lang = c.opts.Language.Code()
	}
	return Result{Text: resp.Text, Language: lang}, nil
}
