package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers that expose a descriptor.
type fder interface {
	Fd() uintptr
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
//
// NO_COLOR (https://no-color.org) and TERM=dumb disable color. CLICOLOR_FORCE
// enables it even when w is not a terminal.
func SupportsColor(w io.Writer) bool {
	return colorEnabled(IsTTY(w))
}

func colorEnabled(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	return isTTY
}
