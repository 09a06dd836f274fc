package hotkey

import "time"

// Edge is the direction of a key transition.
type Edge int

const (
	EdgeDown Edge = iota
	EdgeUp
)

// KeyEvent is one raw key transition from the OS-level hook.
type KeyEvent struct {
	Code uint16
	Edge Edge
	Time time.Time
}

// Source supplies a stream of raw key events. Subscribe is called once at
// startup; a closed event channel means the hook is gone for good.
type Source interface {
	Subscribe() (<-chan KeyEvent, error)
	Close() error
}

// Signal is a logical activation edge emitted by the Watcher.
type Signal int

const (
	ActivationStart Signal = iota
	ActivationEnd
)

func (s Signal) String() string {
	switch s {
	case ActivationStart:
		return "ActivationStart"
	case ActivationEnd:
		return "ActivationEnd"
	default:
		return "unknown"
	}
}
