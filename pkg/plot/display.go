package plot

import (
	"os"

	"golang.org/x/term"
)

// Display reports whether an interactive display is available.
type Display interface {
	Available() bool
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func() bool

// Available calls f.
func (f DisplayFunc) Available() bool {
	return f()
}

// NoDisplay never offers an interactive display.
var NoDisplay Display = DisplayFunc(func() bool { return false })

// TerminalDisplay treats an interactive terminal on Out as a display.
type TerminalDisplay struct {
	Out *os.File

	// Getenv reads environment variables. Nil uses os.Getenv.
	Getenv func(string) string
}

// Available reports whether Out is a terminal that can run a full-screen view.
func (d TerminalDisplay) Available() bool {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if t := getenv("TERM"); t == "dumb" {
		return false
	}
	if d.Out == nil {
		return false
	}
	return term.IsTerminal(int(d.Out.Fd()))
}
