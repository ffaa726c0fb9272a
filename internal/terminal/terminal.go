// Package terminal implements a text terminal frontend for the emulator.
//
// Two display rows are packed into one terminal cell using half block
// characters, so the 64x32 display needs 64x16 cells plus a border and a
// status line.
package terminal

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/emulator"
)

// ErrClosed is returned when rendering to a closed terminal.
var ErrClosed = errors.New("terminal closed")

// layout of the screen in cells
const (
	originX    = 1
	originY    = 1
	cellsWide  = display.Width
	cellsHigh  = display.Height / 2
	statusLine = originY + cellsHigh + 1
)

const eventBufferSize = 16

// keyMap maps the left side of a QWERTY keyboard to the COSMAC VIP hex
// keypad layout.
var keyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal renders the display to a tcell screen and translates key presses
// to keypad events.
type Terminal struct {
	screen tcell.Screen
	title  string
	events chan emulator.Event
	done   chan struct{}
	once   sync.Once
}

// New opens the terminal of the process.
func New(title string) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening screen: %w", err)
	}
	return NewWithScreen(screen, title)
}

// NewWithScreen initializes the given screen and starts reading its input
// events.
func NewWithScreen(screen tcell.Screen, title string) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		title:  title,
		events: make(chan emulator.Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// Events returns the channel that keypad and quit events are delivered on.
func (t *Terminal) Events() <-chan emulator.Event {
	return t.events
}

// Render draws the framebuffer and the status line.
func (t *Terminal) Render(fb *display.Framebuffer, sound bool) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}

	drawBox(t.screen, originX-1, originY-1, cellsWide+1, cellsHigh+1)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for row := range cellsHigh {
		for col := range cellsWide {
			top := fb.Pixel(col, 2*row)
			bottom := fb.Pixel(col, 2*row+1)
			t.screen.SetContent(originX+col, originY+row, halfBlock(top, bottom), nil, style)
		}
	}

	t.drawStatus(sound)
	t.screen.Show()
	return nil
}

// Close restores the terminal. It is safe to call multiple times.
func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

func (t *Terminal) drawStatus(sound bool) {
	indicator := "     "
	if sound {
		indicator = "BEEP "
	}
	status := []rune(fmt.Sprintf(" %s%s  esc: quit", indicator, t.title))

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if sound {
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	}

	width, _ := t.screen.Size()
	for x := range max(width, len(status)) {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		t.screen.SetContent(x, statusLine, r, nil, style)
	}
}

// pollEvents translates screen events until the screen is finalized.
func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		event, ok := translateEvent(t.screen, ev)
		if !ok {
			continue
		}

		select {
		case t.events <- event:
		case <-t.done:
			return
		}
	}
}

func translateEvent(screen tcell.Screen, ev tcell.Event) (emulator.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return emulator.Event{Kind: emulator.Quit}, true
		case tcell.KeyRune:
			key, ok := keyMap[unicode.ToLower(ev.Rune())]
			if !ok {
				return emulator.Event{}, false
			}
			return emulator.Event{Kind: emulator.KeyDown, Key: key}, true
		}

	case *tcell.EventResize:
		screen.Clear()
		screen.Sync()
		return emulator.Event{Kind: emulator.Redraw}, true
	}

	return emulator.Event{}, false
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// drawBox draws a border with its top left corner at x, y.
func drawBox(s tcell.Screen, x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x+w, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y+h, tcell.RuneLLCorner, nil, style)
	s.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, style)

	for col := x + 1; col < x+w; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.SetContent(col, y+h, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.SetContent(x+w, row, tcell.RuneVLine, nil, style)
	}
}
