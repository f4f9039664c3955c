package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  ___  __ _ ___  ___| |", "#818cf8"},
	{" / _ \\/ _` / __|/ _ \\ |", "#a78bfa"},
	{"|  __/ (_| \\__ \\  __/ |", "#e879f9"},
	{" \\___|\\__,_|___/\\___|_|", "#fb7185"},
}

// PrintBanner writes the easel banner, coloured for the detected profile.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	if !IsTerminal(w) {
		p = termenv.Ascii
	}

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
