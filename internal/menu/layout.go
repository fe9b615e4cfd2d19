package menu

import (
	"image"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/charmbracelet/lipgloss"
)

const (
	arrowWidth   = 2
	shortcutGap  = 1
	minRowHeight = 1
)

// InvalidateLayout discards cached geometry for every item.
func (m *Menu) InvalidateLayout() {
	m.invalidateFrom(0)
}

func (m *Menu) invalidateFrom(index int) {
	if index < 0 {
		index = 0
	}
	if m.layoutValid || index < m.invalidFrom {
		m.invalidFrom = index
	}
	m.layoutValid = false
	m.preferredValid = false
}

// LayoutValid reports whether item frames are current.
func (m *Menu) LayoutValid() bool { return m.layoutValid }

// RelayoutIfNeeded recomputes frames from the first invalid item. It reports
// whether any work was done.
func (m *Menu) RelayoutIfNeeded() bool {
	if m.layoutValid {
		return false
	}
	m.ComputeLayout(m.invalidFrom, false, true)
	return true
}

// Bounds is the menu's content rectangle once laid out.
func (m *Menu) Bounds() image.Rectangle {
	m.RelayoutIfNeeded()
	return m.bounds
}

// PreferredSize returns the best-fit size without moving items.
func (m *Menu) PreferredSize() image.Point {
	if !m.preferredValid {
		m.ComputeLayout(0, true, false)
	}
	return m.preferred
}

// ComputeLayout lays out items from start and returns the resulting menu
// size. bestFit drops every cached content size first and records the result
// as the preferred size. moveItems commits frames and bounds; without it the
// existing frames are left as they were.
func (m *Menu) ComputeLayout(start int, bestFit, moveItems bool) image.Point {
	if start < 0 || bestFit {
		start = 0
	}
	if start > len(m.items) {
		start = len(m.items)
	}
	if bestFit {
		for _, it := range m.items {
			it.sizeValid = false
		}
	}
	if !moveItems {
		saved := make([]image.Rectangle, len(m.items))
		for i, it := range m.items {
			saved[i] = it.frame
		}
		defer func() {
			for i, it := range m.items {
				it.frame = saved[i]
			}
		}()
	}

	var size image.Point
	switch m.layout {
	case LayoutColumn:
		size = m.columnLayout(start, moveItems)
	case LayoutRow:
		size = m.rowLayout(start)
	case LayoutMatrix:
		size = m.matrixLayout()
	}
	if len(m.items) == 0 {
		size = image.Point{}
	}

	if bestFit {
		m.preferred = size
		m.preferredValid = true
	}
	if moveItems {
		m.bounds = image.Rectangle{Max: size}
		m.layoutValid = true
		m.invalidFrom = len(m.items)
		events.Menu.Layout(m.name, size.X, size.Y)
	}
	return size
}

// Bump places an item of the given extent after prev. Column menus stack
// downwards; row menus run rightwards and wrap at the wrap width.
func (m *Menu) Bump(prev image.Rectangle, extent image.Point, index int) image.Rectangle {
	if index == 0 {
		return image.Rectangle{Max: extent}
	}
	switch m.layout {
	case LayoutRow:
		r := image.Rect(prev.Max.X, prev.Min.Y, prev.Max.X+extent.X, prev.Min.Y+extent.Y)
		if m.wrapWidth > 0 && r.Max.X > m.wrapWidth && prev.Max.X > 0 {
			r = image.Rect(0, prev.Max.Y, extent.X, prev.Max.Y+extent.Y)
		}
		return r
	default:
		return image.Rect(0, prev.Max.Y, extent.X, prev.Max.Y+extent.Y)
	}
}

func (m *Menu) itemExtent(it *Item) image.Point {
	cs := it.ContentSize()
	if it.separator {
		return image.Pt(cs.X, cs.Y)
	}
	return image.Pt(cs.X+m.margins.Left+m.margins.Right, cs.Y+m.margins.Top+m.margins.Bottom)
}

// AltAsCommand reports whether shortcut labels name alt as the command key.
// Until SetAltAsCommand is called it follows the global menu settings.
func (m *Menu) AltAsCommand() bool {
	if m.altCommand != nil {
		return *m.altCommand
	}
	return menuinfo.Get().AltAsCommand
}

// SetAltAsCommand pins the command key naming of m and its submenus.
func (m *Menu) SetAltAsCommand(on bool) {
	if m.altCommand == nil || *m.altCommand != on {
		m.altCommand = &on
		m.InvalidateLayout()
	}
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.SetAltAsCommand(on)
		}
	}
}

// extraColumns returns the shortcut and submenu arrow column widths.
func (m *Menu) extraColumns() (shortcut, arrow int) {
	alt := m.AltAsCommand()
	for _, it := range m.items {
		if it.shortcut != 0 {
			if w := lipgloss.Width(ShortcutLabel(it.shortcut, it.modifiers, alt)); w+shortcutGap > shortcut {
				shortcut = w + shortcutGap
			}
		}
		if it.submenu != nil {
			arrow = arrowWidth
		}
	}
	return shortcut, arrow
}

func (m *Menu) columnLayout(start int, moveItems bool) image.Point {
	shortcut, arrow := m.extraColumns()
	width := 0
	for _, it := range m.items {
		if w := m.itemExtent(it).X; w > width {
			width = w
		}
	}
	width += shortcut + arrow
	if m.maxContentWidth > 0 && width > m.maxContentWidth {
		width = m.maxContentWidth
	}

	var prev image.Rectangle
	if start > 0 {
		prev = m.items[start-1].frame
	}
	for i := start; i < len(m.items); i++ {
		it := m.items[i]
		ext := m.itemExtent(it)
		it.frame = m.Bump(prev, ext, i)
		prev = it.frame
	}
	height := 0
	if n := len(m.items); n > 0 {
		height = m.items[n-1].frame.Max.Y
	}
	if moveItems {
		for _, it := range m.items {
			it.frame.Min.X = 0
			it.frame.Max.X = width
		}
	}
	return image.Pt(width, height)
}

func (m *Menu) rowLayout(start int) image.Point {
	rowHeight := minRowHeight + m.margins.Top + m.margins.Bottom
	for _, it := range m.items {
		if h := m.itemExtent(it).Y; h > rowHeight {
			rowHeight = h
		}
	}
	// a height change moves every row
	if start > 0 && m.items[start-1].frame.Dy() != rowHeight {
		start = 0
	}
	var prev image.Rectangle
	if start > 0 {
		prev = m.items[start-1].frame
	}
	for i := start; i < len(m.items); i++ {
		it := m.items[i]
		ext := image.Pt(m.itemExtent(it).X, rowHeight)
		if it.separator {
			ext.X = 1
		}
		it.frame = m.Bump(prev, ext, i)
		prev = it.frame
	}
	return boundingSize(m.items)
}

func (m *Menu) matrixLayout() image.Point {
	return boundingSize(m.items)
}

func boundingSize(items []*Item) image.Point {
	var size image.Point
	for _, it := range items {
		if it.frame.Max.X > size.X {
			size.X = it.frame.Max.X
		}
		if it.frame.Max.Y > size.Y {
			size.Y = it.frame.Max.Y
		}
	}
	return size
}
