package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPreservesChunkOrder(t *testing.T) {
	var b Buffer
	c1 := Chunk{Samples: []int16{1, 2, 3}, Channels: 1, Rate: 16000}
	c2 := Chunk{Samples: []int16{4, 5}, Channels: 1, Rate: 16000}
	c3 := Chunk{Samples: []int16{6}, Channels: 1, Rate: 16000}

	b.Append(c1)
	b.Append(c2)
	b.Append(c3)
	require.Equal(t, 6, b.Frames())

	got := b.Flatten()
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6}, got)
}

func TestBufferClearedAfterFlatten(t *testing.T) {
	var b Buffer
	b.Append(Chunk{Samples: []int16{1, 2}, Channels: 1, Rate: 16000})
	_ = b.Flatten()

	assert.Equal(t, 0, b.Frames())
	assert.Empty(t, b.Flatten())
}

func TestClipDuration(t *testing.T) {
	clip := Clip{Samples: make([]int16, 16000), Rate: 16000, Channels: 1}
	assert.Equal(t, time.Second, clip.Duration())

	stereo := Clip{Samples: make([]int16, 16000), Rate: 16000, Channels: 2}
	assert.Equal(t, 500*time.Millisecond, stereo.Duration())

	assert.Equal(t, time.Duration(0), Clip{}.Duration())
}
