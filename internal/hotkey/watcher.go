package hotkey

import (
	"context"
	"errors"
	"fmt"
)

// Watcher turns raw key events for the activation key into
// ActivationStart/ActivationEnd signals. Repeated Down edges from OS key
// repeat are suppressed until the matching Up is seen; an Up without a
// recognized Down (watcher started mid-press) is ignored.
type Watcher struct {
	src   Source
	code  uint16
	debug bool
	out   chan Signal
}

// NewWatcher creates a watcher for the given activation key code.
func NewWatcher(src Source, code uint16, debug bool) *Watcher {
	return &Watcher{src: src, code: code, debug: debug, out: make(chan Signal, 4)}
}

// Signals returns the channel of activation signals.
func (w *Watcher) Signals() <-chan Signal {
	return w.out
}

// Run consumes key events until ctx is done. Any failure of the underlying
// hook is returned as an error; without the hook there is no way to dictate,
// so the caller treats it as fatal.
func (w *Watcher) Run(ctx context.Context) error {
	events, err := w.src.Subscribe()
	if err != nil {
		return fmt.Errorf("hotkey subscribe failed: %w", err)
	}
	defer w.src.Close()

	held := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return errors.New("hotkey event stream closed")
			}
			if ev.Code != w.code {
				if w.debug {
					fmt.Printf("[hotkey] ignoring key code=0x%X\n", ev.Code)
				}
				continue
			}
			switch ev.Edge {
			case EdgeDown:
				if held {
					// OS key repeat while the key is held.
					continue
				}
				held = true
				w.emit(ActivationStart)
			case EdgeUp:
				if !held {
					continue
				}
				held = false
				w.emit(ActivationEnd)
			}
		}
	}
}

func (w *Watcher) emit(sig Signal) {
	select {
	case w.out <- sig:
		if w.debug {
			fmt.Printf("[hotkey] %s\n", sig)
		}
	default:
		// The controller has fallen behind; dropping keeps the hook loop
		// responsive.
		fmt.Printf("[hotkey] dropped %s: controller busy\n", sig)
	}
}
