package hotkey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCode uint16 = 0x20

type fakeSource struct {
	events chan KeyEvent
	subErr error
	closed bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan KeyEvent, 16)}
}

func (f *fakeSource) Subscribe() (<-chan KeyEvent, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.events, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func (f *fakeSource) press(code uint16) {
	f.events <- KeyEvent{Code: code, Edge: EdgeDown, Time: time.Now()}
}

func (f *fakeSource) release(code uint16) {
	f.events <- KeyEvent{Code: code, Edge: EdgeUp, Time: time.Now()}
}

func recvSignal(t *testing.T, ch <-chan Signal) Signal {
	t.Helper()
	select {
	case sig := <-ch:
		return sig
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for signal")
		return 0
	}
}

func assertNoSignal(t *testing.T, ch <-chan Signal) {
	t.Helper()
	select {
	case sig := <-ch:
		t.Fatalf("unexpected signal %v", sig)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherPressReleaseCycle(t *testing.T) {
	src := newFakeSource()
	w := NewWatcher(src, testCode, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	src.press(testCode)
	assert.Equal(t, ActivationStart, recvSignal(t, w.Signals()))
	src.release(testCode)
	assert.Equal(t, ActivationEnd, recvSignal(t, w.Signals()))

	// Second cycle works the same.
	src.press(testCode)
	assert.Equal(t, ActivationStart, recvSignal(t, w.Signals()))
	src.release(testCode)
	assert.Equal(t, ActivationEnd, recvSignal(t, w.Signals()))

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, src.closed)
}

func TestWatcherSuppressesKeyRepeat(t *testing.T) {
	src := newFakeSource()
	w := NewWatcher(src, testCode, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	src.press(testCode)
	assert.Equal(t, ActivationStart, recvSignal(t, w.Signals()))

	// OS key repeat while held: no extra starts.
	src.press(testCode)
	src.press(testCode)
	assertNoSignal(t, w.Signals())

	src.release(testCode)
	assert.Equal(t, ActivationEnd, recvSignal(t, w.Signals()))
	assertNoSignal(t, w.Signals())
}

func TestWatcherIgnoresOrphanRelease(t *testing.T) {
	src := newFakeSource()
	w := NewWatcher(src, testCode, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Watcher started mid-press: the first Up has no recognized Down.
	src.release(testCode)
	assertNoSignal(t, w.Signals())

	src.press(testCode)
	assert.Equal(t, ActivationStart, recvSignal(t, w.Signals()))
}

func TestWatcherIgnoresOtherKeys(t *testing.T) {
	src := newFakeSource()
	w := NewWatcher(src, testCode, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	src.press(0x41)
	src.release(0x41)
	assertNoSignal(t, w.Signals())
}

func TestWatcherSubscribeErrorIsFatal(t *testing.T) {
	src := newFakeSource()
	src.subErr = errors.New("hook rejected")
	w := NewWatcher(src, testCode, false)

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook rejected")
}

func TestWatcherClosedStreamIsFatal(t *testing.T) {
	src := newFakeSource()
	w := NewWatcher(src, testCode, false)
	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	close(src.events)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
