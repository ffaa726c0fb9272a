package engine

import "github.com/retroenv/retrochip8/internal/machine"

// mockDisplay records display requests for testing.
type mockDisplay struct {
	clears    int
	draws     []drawRequest
	collision bool
}

type drawRequest struct {
	x, y   uint8
	sprite []byte
}

func (m *mockDisplay) Clear() {
	m.clears++
}

func (m *mockDisplay) DrawSprite(x, y uint8, sprite []byte) bool {
	m.draws = append(m.draws, drawRequest{
		x:      x,
		y:      y,
		sprite: append([]byte(nil), sprite...),
	})
	return m.collision
}

// newTestEngine returns an engine for a ROM made of the given opcode words.
func newTestEngine(opts Options, words ...uint16) (*Engine, *mockDisplay) {
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}

	display := &mockDisplay{}
	if opts.Display == nil {
		opts.Display = display
	}
	if opts.Random == nil {
		opts.Random = NewSequenceSource()
	}
	return New(machine.New(rom), opts), display
}
