package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown for the terminal.
// When plain is set, or the renderer cannot be built, markdown is returned unchanged.
func NewRenderer(plain bool, width int) func(string) (string, error) {
	passthrough := func(markdown string) (string, error) { return markdown, nil }
	if plain {
		return passthrough
	}

	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return passthrough
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
