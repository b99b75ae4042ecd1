package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders an answer for the terminal. theme is "auto" or one
// of glamour's standard styles ("dark", "light", "notty", ...). If rendering
// fails the original content is returned.
func RenderMarkdown(content string, width int, theme string) string {
	if content == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	styleOpt := glamour.WithStandardStyle(theme)
	if theme == "" || theme == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}

	// Trim trailing newlines that glamour adds
	return strings.TrimRight(out, "\n")
}
