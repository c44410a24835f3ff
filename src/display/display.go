// Package display detects what the controlling terminal can show
package display

import (
	"os"

	"golang.org/x/term"
)

// Package-level function variables for testing
var (
	isTerminalFunc = term.IsTerminal
	getSizeFunc    = term.GetSize
	getenvFunc     = os.Getenv
)

// Mode represents how the CLI should present output
type Mode int

const (
	// ModeHeadless - no TTY (service, cron, pipe)
	ModeHeadless Mode = iota
	// ModeCLI - TTY without color
	ModeCLI
	// ModeTUI - interactive color terminal
	ModeTUI
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeHeadless:
		return "headless"
	case ModeCLI:
		return "cli"
	case ModeTUI:
		return "tui"
	default:
		return "unknown"
	}
}

// Env represents the detected terminal environment
type Env struct {
	IsTerminal bool // stdout is a TTY
	Cols       int  // 0 if no terminal
	Rows       int
	IsSSH      bool
	HasColor   bool
}

// Detect inspects stdout and the environment
func Detect() Env {
	return detect(int(os.Stdout.Fd()))
}

func detect(fd int) Env {
	var env Env

	env.IsTerminal = isTerminalFunc(fd)
	if env.IsTerminal {
		if cols, rows, err := getSizeFunc(fd); err == nil {
			env.Cols = cols
			env.Rows = rows
		}
	}

	env.IsSSH = getenvFunc("SSH_CLIENT") != "" || getenvFunc("SSH_TTY") != "" || getenvFunc("SSH_CONNECTION") != ""
	env.HasColor = env.IsTerminal && colorSupported()
	return env
}

// colorSupported follows NO_COLOR, FORCE_COLOR and TERM
func colorSupported() bool {
	if getenvFunc("NO_COLOR") != "" {
		return false
	}
	if getenvFunc("FORCE_COLOR") != "" {
		return true
	}
	t := getenvFunc("TERM")
	return t != "" && t != "dumb"
}

// GetMode determines the display mode
func (e Env) GetMode() Mode {
	switch {
	case !e.IsTerminal:
		return ModeHeadless
	case !e.HasColor:
		return ModeCLI
	default:
		return ModeTUI
	}
}

// Width returns the terminal width or fallback when unknown
func (e Env) Width(fallback int) int {
	if e.Cols > 0 {
		return e.Cols
	}
	return fallback
}
