package capture

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrDeviceUnavailable reports that the requested input device could not be
// opened. The attempted session is aborted; the process keeps running.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

const framesPerChunk = 1024

// Session owns the lifecycle of one recording: it opens a PortAudio input
// stream, feeds arriving chunks into a Buffer, and returns the flattened
// samples on Stop. The input device is held exclusively between Start and
// Stop; Stop releases it on every exit path.
type Session struct {
	device   int
	rate     int
	channels int
	debug    bool

	mu     sync.Mutex
	buf    Buffer
	active bool
	stop   chan struct{}
	done   chan struct{}
}

// NewSession creates a capture session for the given device index (-1 for the
// system default) and sample rate.
func NewSession(device, rate, channels int, debug bool) *Session {
	return &Session{device: device, rate: rate, channels: channels, debug: debug}
}

// Start opens the input stream and begins buffering audio. It returns
// ErrDeviceUnavailable (wrapped) if the device cannot be opened.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return fmt.Errorf("capture already active")
	}
	s.buf = Buffer{}
	s.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: portaudio init failed: %v", ErrDeviceUnavailable, err)
	}

	in := make([]int16, framesPerChunk*s.channels)
	stream, err := s.openStream(in)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: start stream failed: %v", ErrDeviceUnavailable, err)
	}

	s.mu.Lock()
	s.active = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.readLoop(stream, in)
	return nil
}

// Stop halts the stream, releases the device, and returns the buffered
// samples as a single clip. The buffer is cleared.
func (s *Session) Stop() (Clip, error) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return Clip{}, fmt.Errorf("capture not active")
	}
	s.active = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	samples := s.buf.Flatten()
	s.mu.Unlock()

	return Clip{Samples: samples, Rate: s.rate, Channels: s.channels}, nil
}

func (s *Session) openStream(in []int16) (*portaudio.Stream, error) {
	if s.device < 0 {
		return portaudio.OpenDefaultStream(s.channels, 0, float64(s.rate), framesPerChunk, in)
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices failed: %v", err)
	}
	if s.device >= len(devices) {
		return nil, fmt.Errorf("no device with index %d", s.device)
	}
	dev := devices[s.device]
	if dev.MaxInputChannels < s.channels {
		return nil, fmt.Errorf("device %d (%s) has no input channels", s.device, dev.Name)
	}
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: s.channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(s.rate),
		FramesPerBuffer: framesPerChunk,
	}
	return portaudio.OpenStream(params, in)
}

func (s *Session) readLoop(stream *portaudio.Stream, in []int16) {
	defer func() {
		_ = stream.Stop()
		_ = stream.Close()
		_ = portaudio.Terminate()
		close(s.done)
	}()

	for {
		select {
		case <-s.stop:
			return
		default:
		}
		if err := stream.Read(); err != nil {
			// Overflows are routine when the host is busy; keep reading.
			if s.debug {
				fmt.Printf("[record] stream read error: %v\n", err)
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		chunk := Chunk{Samples: append([]int16(nil), in...), Channels: s.channels, Rate: s.rate}
		s.mu.Lock()
		s.buf.Append(chunk)
		s.mu.Unlock()
	}
}
