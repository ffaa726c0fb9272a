// Package detector handles ROM system detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// nesMagic starts every iNES file header.
var nesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector determines the system a ROM was built for from its file header
// and file name extension.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system of the ROM. A file header takes precedence
// over the file extension, files without a known extension are assumed to
// be CHIP-8 programs since those have no header.
func (d *Detector) Detect(filename string, rom []byte) arch.System {
	if bytes.HasPrefix(rom, nesMagic) {
		d.logger.Debug("Detected iNES header", log.String("file", filename))
		return arch.NES
	}

	system := d.detectFromFile(filename)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	case ".ch8", ".c8", ".rom", ".bin", "":
		return arch.CHIP8System
	default:
		d.logger.Warn("Unknown ROM file extension, assuming CHIP-8",
			log.String("extension", ext))
		return arch.CHIP8System
	}
}
