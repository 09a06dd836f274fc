package hotkey

import (
	"fmt"
	"time"

	"golang.design/x/hotkey"
)

// GlobalSource is a Source backed by a registered system-wide hotkey. The
// registration gives clean Down/Up edges for the bound combination without a
// raw keyboard hook.
type GlobalSource struct {
	spec   string
	mods   []hotkey.Modifier
	key    hotkey.Key
	hk     *hotkey.Hotkey
	events chan KeyEvent
	quit   chan struct{}
}

// NewGlobalSource parses a hotkey spec like "ctrl+shift+space" or "f13" and
// prepares a source for it. Registration happens on Subscribe.
func NewGlobalSource(spec string) (*GlobalSource, error) {
	mods, key, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}
	return &GlobalSource{spec: spec, mods: mods, key: key}, nil
}

// Code returns the key code the source reports in its events.
func (s *GlobalSource) Code() uint16 {
	return uint16(s.key)
}

// Subscribe registers the hotkey and starts delivering key events.
func (s *GlobalSource) Subscribe() (<-chan KeyEvent, error) {
	hk := hotkey.New(s.mods, s.key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey '%s' failed: %w", s.spec, err)
	}
	s.hk = hk
	s.events = make(chan KeyEvent, 16)
	s.quit = make(chan struct{})
	go s.pump()
	return s.events, nil
}

// Close unregisters the hotkey and ends the event stream.
func (s *GlobalSource) Close() error {
	if s.hk == nil {
		return nil
	}
	close(s.quit)
	return s.hk.Unregister()
}

func (s *GlobalSource) pump() {
	defer close(s.events)
	for {
		select {
		case <-s.quit:
			return
		case <-s.hk.Keydown():
			s.send(KeyEvent{Code: uint16(s.key), Edge: EdgeDown, Time: time.Now()})
		case <-s.hk.Keyup():
			s.send(KeyEvent{Code: uint16(s.key), Edge: EdgeUp, Time: time.Now()})
		}
	}
}

func (s *GlobalSource) send(ev KeyEvent) {
	select {
	case s.events <- ev:
	case <-s.quit:
	}
}
