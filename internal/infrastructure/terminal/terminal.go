// Package terminal implements operator prompts and file dialogs on a TTY
// with charmbracelet/huh, plus flag-driven dialogs for scripted runs.
package terminal

import (
	"errors"
	"os"
)

// ErrNonInteractive is returned when input is required but stdin is not a terminal.
var ErrNonInteractive = errors.New("input required but not running in an interactive terminal")

// IsInteractive checks if we're running in an interactive terminal.
func IsInteractive() bool {
	// Check if stdin is a terminal (that's what we're reading from)
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Check if it's a character device (terminal) and not a pipe/file
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
