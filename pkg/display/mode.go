package display

import (
	"os"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode selects between styled and plain output
type Mode int

const (
	// ModeAuto picks ModeTerminal or ModeText from the output file
	ModeAuto Mode = iota
	// ModeTerminal renders colors, tables and markdown
	ModeTerminal
	// ModeText renders plain text
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeTerminal:
		return "term"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ModeAuto, nil
	case "term", "terminal":
		return ModeTerminal, nil
	case "text", "plain":
		return ModeText, nil
	default:
		return ModeAuto, errors.Newf(errors.ErrInvalidInput, "unknown display mode %q", s)
	}
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectMode determines the mode for output written to f
func DetectMode(f *os.File) Mode {
	if os.Getenv("NO_COLOR") != "" {
		return ModeText
	}
	if !IsTerminal(f) {
		return ModeText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return ModeText
	}
	return ModeTerminal
}

// Resolve replaces ModeAuto with the mode detected for f
func (m Mode) Resolve(f *os.File) Mode {
	if m == ModeAuto {
		return DetectMode(f)
	}
	return m
}
