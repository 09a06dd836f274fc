// Package output delivers transcribed text into the focused application,
// either by clipboard paste or by literal keystroke injection.
package output

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// Dispatcher injects transcription results. Injection failures are reported
// to the caller for logging but are never fatal; in clipboard mode the text
// stays on the clipboard so the user can paste by hand.
type Dispatcher struct {
	terminalMode bool
	debug        bool

	pasteDelay   time.Duration
	restoreDelay time.Duration

	// Seams for tests; production wiring in New.
	readClipboard  func() (string, error)
	writeClipboard func(string) error
	sendPaste      func() error
	typeText       func(string) error
}

// New creates a dispatcher. With terminalMode set, text is typed character by
// character instead of pasted, for terminals that reject paste events.
func New(terminalMode, debug bool) *Dispatcher {
	return &Dispatcher{
		terminalMode:   terminalMode,
		debug:          debug,
		pasteDelay:     80 * time.Millisecond,
		restoreDelay:   120 * time.Millisecond,
		readClipboard:  clipboard.ReadAll,
		writeClipboard: clipboard.WriteAll,
		sendPaste:      sendPaste,
		typeText:       typeText,
	}
}

// Dispatch delivers text to the focused application. Empty text is a no-op.
func (d *Dispatcher) Dispatch(text string) error {
	if text == "" {
		return nil
	}
	if d.terminalMode {
		if err := d.typeText(text); err != nil {
			// Keep the transcription reachable even though typing failed.
			_ = d.writeClipboard(text)
			return fmt.Errorf("keystroke injection failed: %w", err)
		}
		return nil
	}

	orig, _ := d.readClipboard()
	if err := d.writeClipboard(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	time.Sleep(d.pasteDelay)
	if err := d.sendPaste(); err != nil {
		// Text remains on the clipboard for a manual paste.
		return fmt.Errorf("paste keystroke failed: %w", err)
	}
	time.Sleep(d.restoreDelay)
	if orig != "" {
		_ = d.writeClipboard(orig)
	}
	if d.debug {
		fmt.Printf("[output] pasted %d characters\n", len(text))
	}
	return nil
}
