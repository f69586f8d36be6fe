// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether the process can run interactive prompts.
// Prompts render on stderr so the command echo on stdout stays a clean,
// pipeable trace; both stdin and stderr must therefore be terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
