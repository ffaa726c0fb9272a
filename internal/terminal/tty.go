package terminal

import "os"

// Available returns whether stdin and stdout are both attached to a
// terminal that the frontend can draw to.
func Available() bool {
	return IsTerminal(os.Stdin.Fd()) && IsTerminal(os.Stdout.Fd())
}
