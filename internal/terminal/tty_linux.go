//go:build linux

package terminal

import "golang.org/x/sys/unix"

// IsTerminal returns whether the file descriptor refers to a terminal.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}
