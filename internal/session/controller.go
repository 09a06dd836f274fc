// Package session coordinates hotkey activations, audio capture, and the
// transcription/output pipeline. It holds the single process-wide session
// slot: at most one recording or transcription is in flight at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/torstefan/mic-transcribe/internal/capture"
	"github.com/torstefan/mic-transcribe/internal/engine"
	"github.com/torstefan/mic-transcribe/internal/hotkey"
)

// State is the controller state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	default:
		return "unknown"
	}
}

// Recorder is the capture collaborator.
type Recorder interface {
	Start() error
	Stop() (capture.Clip, error)
}

// Dispatcher is the output collaborator.
type Dispatcher interface {
	Dispatch(text string) error
}

// Options configures a Controller.
type Options struct {
	// MinDuration is the shortest recording worth transcribing; shorter
	// clips are dropped silently (accidental taps).
	MinDuration time.Duration
	// Timeout bounds one engine invocation. Zero means no limit.
	Timeout time.Duration
	// Notify, when non-nil, receives user-facing status messages.
	Notify func(title, message string)
	Debug  bool
}

// Controller is the session state machine: Idle -> Recording ->
// Transcribing -> Idle. Transcription and dispatch run on a detached
// goroutine so the hotkey loop stays responsive.
type Controller struct {
	rec  Recorder
	eng  engine.Engine
	out  Dispatcher
	opts Options

	state   State
	started time.Time
	done    chan outcome
}

type outcome struct {
	res engine.Result
	err error
}

// NewController wires the state machine to its collaborators.
func NewController(rec Recorder, eng engine.Engine, out Dispatcher, opts Options) *Controller {
	return &Controller{rec: rec, eng: eng, out: out, opts: opts, done: make(chan outcome, 1)}
}

// State returns the current state. Only the Run loop mutates it.
func (c *Controller) State() State {
	return c.state
}

// Run consumes activation signals until ctx is done. Per-session failures
// are logged and the machine returns to Idle; they never stop the loop.
func (c *Controller) Run(ctx context.Context, signals <-chan hotkey.Signal) error {
	for {
		select {
		case <-ctx.Done():
			if c.state == StateRecording {
				_, _ = c.rec.Stop()
			}
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return errors.New("activation signal stream closed")
			}
			c.handle(sig)
		case o := <-c.done:
			c.finish(o)
		}
	}
}

func (c *Controller) handle(sig hotkey.Signal) {
	switch c.state {
	case StateIdle:
		if sig != hotkey.ActivationStart {
			// End without a recognized Start; nothing to do.
			return
		}
		if err := c.rec.Start(); err != nil {
			fmt.Printf("[session] cannot start recording: %v\n", err)
			c.notify("Recording failed")
			return
		}
		c.started = time.Now()
		c.state = StateRecording
		fmt.Println("[session] recording... (release to transcribe)")
		c.notify("Recording started")

	case StateRecording:
		if sig == hotkey.ActivationStart {
			// Duplicate start while already recording.
			return
		}
		clip, err := c.rec.Stop()
		if err != nil {
			c.state = StateIdle
			fmt.Printf("[session] stop failed: %v\n", err)
			return
		}
		if clip.Duration() < c.opts.MinDuration {
			c.state = StateIdle
			if c.opts.Debug {
				fmt.Printf("[session] recording too short (%v), ignoring\n", clip.Duration())
			}
			return
		}
		c.state = StateTranscribing
		fmt.Printf("[session] transcribing %.1fs of audio...\n", clip.Duration().Seconds())
		go c.transcribe(clip)

	case StateTranscribing:
		if sig == hotkey.ActivationStart {
			fmt.Println("[session] transcription in progress; activation dropped")
		}
	}
}

// transcribe runs on its own goroutine; it must not touch controller state.
func (c *Controller) transcribe(clip capture.Clip) {
	ctx := context.Background()
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	res, err := c.eng.Transcribe(ctx, clip)
	if err != nil {
		c.done <- outcome{err: err}
		return
	}
	if res.Text == "" {
		fmt.Println("[session] engine returned empty text")
		c.done <- outcome{res: res}
		return
	}
	fmt.Printf("[session] transcribed in %v: %q\n", res.Duration.Round(time.Millisecond), res.Text)
	if err := c.out.Dispatch(res.Text); err != nil {
		fmt.Printf("[output] %v\n", err)
		c.notify("Injection failed; text left on clipboard")
	}
	c.done <- outcome{res: res}
}

// finish applies a transcription outcome: the slot opens up again.
func (c *Controller) finish(o outcome) {
	c.state = StateIdle
	if o.err != nil {
		fmt.Printf("[session] transcription failed: %v\n", o.err)
		c.notify("Transcription failed")
	}
}

func (c *Controller) notify(message string) {
	if c.opts.Notify != nil {
		c.opts.Notify("mic-transcribe", message)
	}
}
