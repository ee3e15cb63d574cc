package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler colors terminal output. The zero value emits plain text.
type Styler struct {
	profile termenv.Profile
	color   bool
}

// NewStyler enables color only when w is a terminal and NO_COLOR is unset.
func NewStyler(w io.Writer) Styler {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != "" {
		return Styler{profile: termenv.Ascii}
	}
	return Styler{profile: termenv.EnvColorProfile(), color: true}
}

// Color reports whether the styler emits escape sequences.
func (s Styler) Color() bool { return s.color }

func (s Styler) paint(text, hex string) string {
	if !s.color {
		return text
	}
	return termenv.String(text).Foreground(s.profile.Color(hex)).Bold().String()
}

// Verdict renders ACCEPTED in green or REJECTED in red.
func (s Styler) Verdict(accepted bool) string {
	if accepted {
		return s.paint("ACCEPTED", "#22c55e")
	}
	return s.paint("REJECTED", "#ef4444")
}

// Error renders an error label.
func (s Styler) Error(text string) string {
	return s.paint(text, "#ef4444")
}

// Muted renders secondary text.
func (s Styler) Muted(text string) string {
	return s.paint(text, "#94a3b8")
}
