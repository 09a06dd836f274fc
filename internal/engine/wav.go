package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/torstefan/mic-transcribe/internal/capture"
)

// writeClip writes the clip as a 16-bit PCM WAV file under dir and returns
// its path. The caller removes or stashes the file when done.
func writeClip(clip capture.Clip, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	path := filepath.Join(dir, fmt.Sprintf("RecordTemp_%s.wav", id))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create wav failed: %w", err)
	}

	enc := wav.NewEncoder(f, clip.Rate, 16, clip.Channels, 1)
	data := make([]int, len(clip.Samples))
	for i, v := range clip.Samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: clip.Channels, SampleRate: clip.Rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav write failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav close failed: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("wav close failed: %w", err)
	}
	return path, nil
}
