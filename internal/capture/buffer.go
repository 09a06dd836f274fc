package capture

// Chunk is one block of samples delivered by the input stream. Ownership
// transfers to the Buffer on append.
type Chunk struct {
	Samples  []int16
	Channels int
	Rate     int
}

// Buffer accumulates chunks in arrival order. It is owned by exactly one
// Session; appends and reads are never concurrent.
type Buffer struct {
	chunks []Chunk
	frames int
}

// Append adds a chunk to the end of the buffer.
func (b *Buffer) Append(c Chunk) {
	b.chunks = append(b.chunks, c)
	b.frames += len(c.Samples)
}

// Frames returns the total number of buffered sample frames.
func (b *Buffer) Frames() int {
	return b.frames
}

// Flatten returns all buffered samples as one sequence, preserving chunk
// arrival order, and clears the buffer.
func (b *Buffer) Flatten() []int16 {
	out := make([]int16, 0, b.frames)
	for _, c := range b.chunks {
		out = append(out, c.Samples...)
	}
	b.chunks = nil
	b.frames = 0
	return out
}
