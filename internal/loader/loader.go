// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a ROM file as raw binary data without any header. ROMs that do
// not fit into the program space are returned complete, the machine state
// truncates them when loading.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	switch {
	case len(rom) == 0:
		l.logger.Warn("ROM file is empty", log.String("file", path))
	case len(rom) > machine.MaxROMSize:
		l.logger.Warn("ROM exceeds program memory and will be truncated",
			log.String("file", path),
			log.Int("size", len(rom)),
			log.Int("max_size", machine.MaxROMSize))
	default:
		l.logger.Debug("ROM loaded",
			log.String("file", path),
			log.Int("size", len(rom)))
	}

	return rom, nil
}

// Read reads a raw ROM image from the reader. The cartridge buffer is padded
// to a full bank, the returned image is cut to the bytes actually read.
func Read(reader io.Reader) ([]byte, error) {
	counter := &countingReader{reader: reader}
	cart, err := cartridge.LoadBuffer(counter)
	if err != nil {
		return nil, fmt.Errorf("loading buffer: %w", err)
	}
	return cart.PRG[:counter.read], nil
}

// countingReader counts the bytes read from the wrapped reader.
type countingReader struct {
	reader io.Reader
	read   int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.read += n
	return n, err
}
