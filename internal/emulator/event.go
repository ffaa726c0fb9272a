package emulator

import (
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
)

// EventKind is the type of an input event.
type EventKind uint8

// Input event kinds.
const (
	KeyDown EventKind = iota
	KeyUp
	Quit
	Redraw // the frontend lost its contents and needs a full render
)

// Event is an input event sent by a frontend.
type Event struct {
	Kind EventKind
	Key  uint8 // keypad key for KeyDown and KeyUp
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown:
		return fmt.Sprintf("KeyDown(%X)", e.Key)
	case KeyUp:
		return fmt.Sprintf("KeyUp(%X)", e.Key)
	case Quit:
		return "Quit"
	case Redraw:
		return "Redraw"
	default:
		return fmt.Sprintf("Event(%d)", e.Kind)
	}
}

// keyLatch releases keys a fixed time after their last press. Terminals only
// report key presses and repeats, so without it a pressed key would stay down
// forever.
type keyLatch struct {
	hold    time.Duration
	pressed [machine.KeyCount]time.Time
}

func newKeyLatch(hold time.Duration) *keyLatch {
	return &keyLatch{hold: hold}
}

func (l *keyLatch) press(key uint8, now time.Time) {
	if l.hold <= 0 || int(key) >= machine.KeyCount {
		return
	}
	l.pressed[key] = now
}

func (l *keyLatch) release(key uint8) {
	if int(key) >= machine.KeyCount {
		return
	}
	l.pressed[key] = time.Time{}
}

// expired returns the keys whose hold time has passed and forgets them.
func (l *keyLatch) expired(now time.Time) []uint8 {
	var keys []uint8
	for key, at := range l.pressed {
		if at.IsZero() || now.Sub(at) < l.hold {
			continue
		}
		keys = append(keys, uint8(key))
		l.pressed[key] = time.Time{}
	}
	return keys
}

func (l *keyLatch) reset() {
	l.pressed = [machine.KeyCount]time.Time{}
}
