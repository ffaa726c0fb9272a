//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

// IsTerminal reports false on platforms without termios support, the
// emulator runs headless there.
func IsTerminal(uintptr) bool {
	return false
}
