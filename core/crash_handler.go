// Package core holds the crash handling primitives every goroutine in
// the process funnels through. A panic anywhere must restore the
// terminal before the stack trace prints, or the trace lands in a raw
// alternate screen nobody can read.
package core

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/termdesk/terminal"
)

// crashTerminal, when registered, is finalized before the trace prints
var crashTerminal terminal.Terminal

// SetCrashTerminal registers the terminal to restore on panic.
// Pass nil to fall back to a blind emergency reset on stdout.
func SetCrashTerminal(t terminal.Terminal) {
	crashTerminal = t
}

// HandleCrash is the unified panic handler: restore the terminal,
// print the stack trace, exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if crashTerminal != nil {
		crashTerminal.Fini()
	} else {
		// No terminal registered; reset blind
		terminal.EmergencyReset(os.Stdout)
	}

	// Raw mode may still be draining; \r\n keeps the trace aligned
	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the go keyword so a crashed goroutine still
// cleans up the terminal.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
