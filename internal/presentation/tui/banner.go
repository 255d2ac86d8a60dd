package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the leveledit banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String(" _                _          _ _ _   ").Foreground(p.Color("#34d399")))
	fmt.Fprintln(w, out.String("| | _____   _____| | ___  __| (_) |_ ").Foreground(p.Color("#2dd4bf")))
	fmt.Fprintln(w, out.String("| |/ _ \\ \\ / / _ \\ |/ _ \\/ _` | | __|").Foreground(p.Color("#22d3ee")))
	fmt.Fprintln(w, out.String("| |  __/\\ V /  __/ |  __/ (_| | | |_ ").Foreground(p.Color("#38bdf8")))
	fmt.Fprintln(w, out.String("|_|\\___| \\_/ \\___|_|\\___|\\__,_|_|\\__|").Foreground(p.Color("#60a5fa")))
	fmt.Fprintln(w)
}

// Status formats a one-line outcome, green for success and red for failure.
func Status(w io.Writer, ok bool, msg string) string {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	mark, color := "✔", "#22c55e"
	if !ok {
		mark, color = "✘", "#ef4444"
	}
	return out.String(mark + " " + msg).Foreground(p.Color(color)).String()
}
