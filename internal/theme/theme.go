package theme

import (
	"strings"

	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes the Lip Gloss styles used to draw menus.
type Styles struct {
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	DisabledItem *lipgloss.Style
	Mark         *lipgloss.Style
	Shortcut     *lipgloss.Style
	Arrow        *lipgloss.Style
	Separator    *lipgloss.Style
	Scroller     *lipgloss.Style
	Empty        *lipgloss.Style
	Cursor       *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = build(menuinfo.Default())

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// FromInfo derives a style set from the shared menu appearance settings.
func FromInfo(info menuinfo.Info) *Styles {
	s := build(info)
	return &s
}

func build(info menuinfo.Info) Styles {
	base := lipgloss.NewStyle().Background(lipgloss.Color(info.BackgroundColor))
	switch strings.ToLower(info.FontStyle) {
	case "bold":
		base = base.Bold(true)
	case "italic":
		base = base.Italic(true)
	case "bold italic":
		base = base.Bold(true).Italic(true)
	}
	return Styles{
		Item: ptr(
			base.Foreground(lipgloss.Color("252")),
		),
		SelectedItem: ptr(
			base.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
		),
		DisabledItem: ptr(
			base.Foreground(lipgloss.Color("243")),
		),
		Mark: ptr(
			base.Foreground(lipgloss.Color("34")).Bold(true),
		),
		Shortcut: ptr(
			base.Foreground(lipgloss.Color("245")),
		),
		Arrow: ptr(
			base.Foreground(lipgloss.Color("249")),
		),
		Separator: ptr(
			base.Foreground(lipgloss.Color("240")),
		),
		Scroller: ptr(
			base.Foreground(lipgloss.Color("245")),
		),
		Empty: ptr(
			base.Foreground(lipgloss.Color("241")).Italic(true),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
