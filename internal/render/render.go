// Package render draws laid out menus as terminal lines.
package render

import (
	"image"
	"sort"
	"strings"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/theme"
	"github.com/atomicstack/menukit/internal/track"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	markGlyph         = "✓"
	arrowGlyph        = "▸"
	scrollUpGlyph     = "▲"
	scrollDownGlyph   = "▼"
	columnSeparator   = "─"
	rowSeparatorGlyph = "│"
	ellipsis          = "…"
)

// Renderer paints menus with a fixed style set.
type Renderer struct {
	styles *theme.Styles
}

// New returns a renderer using styles, or the default set when nil.
func New(styles *theme.Styles) *Renderer {
	if styles == nil {
		styles = theme.Default()
	}
	return &Renderer{styles: styles}
}

// Render implements track.Renderer.
func (r *Renderer) Render(m *menu.Menu, v track.View) []string {
	width := v.Size.X
	rows := v.Size.Y
	if width <= 0 || rows <= 0 {
		return nil
	}
	body := rows
	if v.Scrollers {
		body -= 2
	}
	if body < 0 {
		body = 0
	}

	var content []string
	if m.CountItems() == 0 {
		content = r.emptyLines(m, width)
	} else {
		content = r.canvas(m, v, width)
	}

	out := make([]string, 0, rows)
	if v.Scrollers {
		out = append(out, r.scroller(scrollUpGlyph, v.CanScrollUp, width))
	}
	for i := 0; i < body; i++ {
		y := v.Scroll + i
		if y >= 0 && y < len(content) {
			out = append(out, content[y])
			continue
		}
		out = append(out, r.styles.Item.Render(strings.Repeat(" ", width)))
	}
	if v.Scrollers {
		out = append(out, r.scroller(scrollDownGlyph, v.CanScrollDown, width))
	}
	return out
}

func (r *Renderer) scroller(glyph string, active bool, width int) string {
	if !active {
		return r.styles.Scroller.Render(strings.Repeat(" ", width))
	}
	left := (width - 1) / 2
	return r.styles.Scroller.Render(strings.Repeat(" ", left) + glyph + strings.Repeat(" ", width-left-1))
}

func (r *Renderer) emptyLines(m *menu.Menu, width int) []string {
	mg := m.ItemMargins()
	text := fit(strings.Repeat(" ", mg.Left)+menu.EmptyLabel, width)
	lines := make([]string, 0, 1+mg.Top+mg.Bottom)
	blank := r.styles.Empty.Render(strings.Repeat(" ", width))
	for i := 0; i < mg.Top; i++ {
		lines = append(lines, blank)
	}
	lines = append(lines, pad(r.styles.Empty.Render(text), width, r.styles.Empty))
	for i := 0; i < mg.Bottom; i++ {
		lines = append(lines, blank)
	}
	return lines
}

// piece is a rendered item cell block positioned in menu-local cells.
type piece struct {
	frame image.Rectangle
	lines []string
}

// canvas renders every item and composes them row by row.
func (r *Renderer) canvas(m *menu.Menu, v track.View, width int) []string {
	bounds := m.Bounds()
	height := bounds.Dy()
	pieces := make([]piece, 0, m.CountItems())
	for _, it := range m.Items() {
		f := it.Frame()
		if f.Empty() {
			continue
		}
		// only rows that can be seen are drawn
		if v.Scrollers && (f.Max.Y <= v.Scroll || f.Min.Y >= v.Scroll+v.Size.Y) {
			pieces = append(pieces, piece{frame: f})
			continue
		}
		pieces = append(pieces, piece{frame: f, lines: r.item(m, it, v)})
	}
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].frame.Min.X < pieces[j].frame.Min.X })

	out := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		x := 0
		for _, p := range pieces {
			if y < p.frame.Min.Y || y >= p.frame.Max.Y || p.frame.Min.X < x {
				continue
			}
			if gap := p.frame.Min.X - x; gap > 0 {
				b.WriteString(r.styles.Item.Render(strings.Repeat(" ", gap)))
			}
			row := y - p.frame.Min.Y
			if row < len(p.lines) {
				b.WriteString(p.lines[row])
			} else {
				b.WriteString(r.styles.Item.Render(strings.Repeat(" ", p.frame.Dx())))
			}
			x = p.frame.Max.X
		}
		if x < width {
			b.WriteString(r.styles.Item.Render(strings.Repeat(" ", width-x)))
		}
		out[y] = b.String()
	}
	return out
}

// item renders the cells of one item frame.
func (r *Renderer) item(m *menu.Menu, it *menu.Item, v track.View) []string {
	f := it.Frame()
	w, h := f.Dx(), f.Dy()
	if it.IsSeparator() {
		glyph := columnSeparator
		if m.Layout() == menu.LayoutRow {
			glyph = rowSeparatorGlyph
		}
		lines := make([]string, h)
		for i := range lines {
			if m.Layout() == menu.LayoutRow || i == h/2 {
				lines[i] = r.styles.Separator.Render(strings.Repeat(glyph, w))
				continue
			}
			lines[i] = r.styles.Separator.Render(strings.Repeat(" ", w))
		}
		return lines
	}

	style := r.styles.Item
	switch {
	case !it.Enabled():
		style = r.styles.DisabledItem
	case it.Selected():
		style = r.styles.SelectedItem
	}

	mg := m.ItemMargins()
	if c := it.Content(); c != nil {
		inner := image.Pt(w-mg.Left-mg.Right, h-mg.Top-mg.Bottom)
		raw := c.Render(inner, it.Selected())
		indent := style.Render(strings.Repeat(" ", mg.Left))
		lines := make([]string, h)
		for i := range lines {
			line := ""
			if j := i - mg.Top; j >= 0 && j < len(raw) && j < inner.Y {
				line = indent + fit(raw[j], inner.X)
			}
			lines[i] = pad(line, w, style)
		}
		return lines
	}

	blank := style.Render(strings.Repeat(" ", w))
	lines := make([]string, h)
	for i := range lines {
		lines[i] = blank
	}
	textRow := mg.Top
	if textRow >= h {
		textRow = 0
	}
	lines[textRow] = r.itemLine(m, it, w, style, v.ShowTriggers, v.AltAsCommand)
	return lines
}

// itemLine lays out mark, label, shortcut and submenu arrow in w cells.
func (r *Renderer) itemLine(m *menu.Menu, it *menu.Item, w int, style *lipgloss.Style, showTriggers, altAsCommand bool) string {
	mg := m.ItemMargins()

	left := strings.Repeat(" ", mg.Left)
	if it.Marked() && mg.Left > 0 {
		left = markGlyph + strings.Repeat(" ", mg.Left-1)
	}

	var right string
	if key, mods := it.Shortcut(); key != 0 && m.Layout() == menu.LayoutColumn {
		right = menu.ShortcutLabel(key, mods, altAsCommand)
	}
	if it.Submenu() != nil && m.Layout() == menu.LayoutColumn {
		right += " " + arrowGlyph
	}
	right += strings.Repeat(" ", mg.Right)

	avail := w - mg.Left - lipgloss.Width(right)
	if avail < 0 {
		avail = 0
	}
	label := fit(it.Label(), avail)
	gap := avail - lipgloss.Width(label)
	if gap < 0 {
		gap = 0
	}

	var b strings.Builder
	if it.Marked() && mg.Left > 0 {
		b.WriteString(markStyle(r.styles, style).Render(left[:len(markGlyph)]))
		b.WriteString(style.Render(left[len(markGlyph):]))
	} else {
		b.WriteString(style.Render(left))
	}
	b.WriteString(r.label(label, it, style, showTriggers))
	b.WriteString(style.Render(strings.Repeat(" ", gap)))
	if right != "" {
		b.WriteString(shortcutStyle(r.styles, style, it).Render(right))
	}
	return b.String()
}

// label underlines the trigger rune when triggers are shown.
func (r *Renderer) label(label string, it *menu.Item, style *lipgloss.Style, showTriggers bool) string {
	idx := it.TriggerIndex()
	runes := []rune(label)
	limit := len(runes)
	if label != it.Label() {
		// the last rune is the ellipsis
		limit--
	}
	if !showTriggers || it.Trigger() == 0 || idx < 0 || idx >= limit {
		return style.Render(label)
	}
	under := style.Underline(true)
	return style.Render(string(runes[:idx])) + under.Render(string(runes[idx])) + style.Render(string(runes[idx+1:]))
}

func markStyle(s *theme.Styles, base *lipgloss.Style) *lipgloss.Style {
	if base == s.Item {
		return s.Mark
	}
	return base
}

func shortcutStyle(s *theme.Styles, base *lipgloss.Style, it *menu.Item) *lipgloss.Style {
	if base != s.Item {
		return base
	}
	if it.Submenu() != nil {
		return s.Arrow
	}
	return s.Shortcut
}

// fit truncates text to width cells, ending in an ellipsis when cut.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return truncate.StringWithTail(text, uint(width), ellipsis)
}

func pad(text string, width int, style *lipgloss.Style) string {
	if n := width - lipgloss.Width(text); n > 0 {
		return text + style.Render(strings.Repeat(" ", n))
	}
	return text
}
