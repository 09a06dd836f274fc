package capture

import "time"

// Clip is one finished recording: a flat sample sequence plus its format.
type Clip struct {
	Samples  []int16
	Rate     int
	Channels int
}

// Duration returns the recorded length of the clip.
func (c Clip) Duration() time.Duration {
	if c.Rate <= 0 || c.Channels <= 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.Rate)
}
