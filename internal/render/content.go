package render

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// TextContent is item content holding a paragraph wrapped at Width cells.
type TextContent struct {
	Text  string
	Width int
	// Indent is the number of blank cells before each line.
	Indent int
}

func (c TextContent) lines() []string {
	text := c.Text
	if c.Width > 0 {
		text = wordwrap.String(text, c.Width)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// PreferredSize implements menu.Content.
func (c TextContent) PreferredSize() image.Point {
	lines := c.lines()
	w := 0
	for _, l := range lines {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return image.Pt(w+c.Indent, len(lines))
}

// Render implements menu.Content.
func (c TextContent) Render(size image.Point, selected bool) []string {
	lines := c.lines()
	if len(lines) > size.Y {
		lines = lines[:size.Y]
	}
	indent := strings.Repeat(" ", c.Indent)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = indent + l
	}
	return out
}
