package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInjection struct {
	clipboard string
	writes    []string
	pastes    int
	typed     []string
	pasteErr  error
	typeErr   error
}

func newTestDispatcher(terminalMode bool, f *fakeInjection) *Dispatcher {
	d := New(terminalMode, false)
	d.pasteDelay = 0
	d.restoreDelay = 0
	d.readClipboard = func() (string, error) { return f.clipboard, nil }
	d.writeClipboard = func(s string) error {
		f.clipboard = s
		f.writes = append(f.writes, s)
		return nil
	}
	d.sendPaste = func() error {
		f.pastes++
		return f.pasteErr
	}
	d.typeText = func(s string) error {
		if f.typeErr != nil {
			return f.typeErr
		}
		f.typed = append(f.typed, s)
		return nil
	}
	return d
}

func TestDispatchEmptyTextIsNoop(t *testing.T) {
	f := &fakeInjection{}
	d := newTestDispatcher(false, f)

	require.NoError(t, d.Dispatch(""))
	assert.Empty(t, f.writes)
	assert.Equal(t, 0, f.pastes)
}

func TestDispatchClipboardPasteAndRestore(t *testing.T) {
	f := &fakeInjection{clipboard: "previous contents"}
	d := newTestDispatcher(false, f)

	require.NoError(t, d.Dispatch("dictated text"))
	assert.Equal(t, 1, f.pastes)
	// Text written, then the prior clipboard restored.
	assert.Equal(t, []string{"dictated text", "previous contents"}, f.writes)
	assert.Equal(t, "previous contents", f.clipboard)
}

func TestDispatchPasteFailureLeavesTextOnClipboard(t *testing.T) {
	f := &fakeInjection{clipboard: "previous", pasteErr: errors.New("no focused window")}
	d := newTestDispatcher(false, f)

	err := d.Dispatch("dictated text")
	require.Error(t, err)
	// No restore: the transcription stays reachable for a manual paste.
	assert.Equal(t, "dictated text", f.clipboard)
}

func TestDispatchTerminalModeTypesText(t *testing.T) {
	f := &fakeInjection{}
	d := newTestDispatcher(true, f)

	require.NoError(t, d.Dispatch("ls -la"))
	assert.Equal(t, []string{"ls -la"}, f.typed)
	assert.Equal(t, 0, f.pastes)
	assert.Empty(t, f.writes)
}

func TestDispatchTypeFailureFallsBackToClipboard(t *testing.T) {
	f := &fakeInjection{typeErr: errors.New("injection unavailable")}
	d := newTestDispatcher(true, f)

	err := d.Dispatch("dictated text")
	require.Error(t, err)
	assert.Equal(t, "dictated text", f.clipboard)
}

func TestKeyForRune(t *testing.T) {
	_, shift, ok := keyForRune('a')
	require.True(t, ok)
	assert.False(t, shift)

	_, shift, ok = keyForRune('A')
	require.True(t, ok)
	assert.True(t, shift)

	_, shift, ok = keyForRune('!')
	require.True(t, ok)
	assert.True(t, shift)

	_, _, ok = keyForRune('ø')
	assert.False(t, ok)
}
