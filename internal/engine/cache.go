package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cache keeps per-session artifacts (the recorded WAV and the raw engine
// response) under a directory for later inspection. A nil cache discards the
// WAV instead.
type cache struct {
	dir string
}

func newCache(dir string) *cache {
	if dir == "" {
		return nil
	}
	return &cache{dir: dir}
}

// finish either stashes or removes the temp WAV, and stores the raw response
// alongside it on success.
func (c *cache) finish(wavPath string, raw []byte, ok bool) {
	if c == nil {
		if wavPath != "" {
			_ = os.Remove(wavPath)
		}
		return
	}
	base := fmt.Sprintf("audio-%s", time.Now().Format("2006-01-02-15.04.05"))
	if wavPath != "" {
		dst := filepath.Join(c.dir, base+".wav")
		if err := os.Rename(wavPath, dst); err != nil {
			fmt.Printf("[cache] failed to keep wav as %s: %v\n", dst, err)
			_ = os.Remove(wavPath)
		}
	}
	if ok && len(raw) > 0 {
		dst := filepath.Join(c.dir, base+".json")
		if err := os.WriteFile(dst, raw, 0644); err != nil {
			fmt.Printf("[cache] failed to write response to %s: %v\n", dst, err)
		}
	}
}
