package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for automata.
func PrintBanner(w io.Writer, s Styler) {
	lines := []struct{ text, hex string }{
		{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#818cf8"},
		{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#a78bfa"},
		{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#c084fc"},
		{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		if s.color {
			fmt.Fprintln(w, termenv.String(l.text).Foreground(s.profile.Color(l.hex)))
		} else {
			fmt.Fprintln(w, l.text)
		}
	}
	fmt.Fprintln(w)
}
