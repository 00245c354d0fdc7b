package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether stream is attached to a terminal. It accepts
// readers and writers alike: anything with an Fd method, such as *os.File.
func IsTerminal(stream any) bool {
	if f, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether w should receive ANSI colors: it must be a
// terminal, NO_COLOR must be unset and TERM must not be "dumb".
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTerminal(w))
}

func colorAllowed(isTerminal bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal
}
