package track

import (
	"unicode/utf8"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
)

func (s *Session) handleKey(ev Event) {
	depth := len(s.chain) - 1
	om := s.chain[depth]
	m := om.menu
	sel := m.Selected()

	if !s.keyboard {
		s.keyboard = true
		for _, o := range s.chain {
			s.paint(o)
		}
	}
	s.pointerStale = true

	switch ev.Key {
	case KeyArrowUp, KeyArrowDown:
		forward := ev.Key == KeyArrowDown
		s.setSticky(true)
		if m.Layout() == menu.LayoutRow {
			if forward && sel != nil && sel.Submenu() != nil {
				s.selectItem(depth, sel, true, true)
			}
			return
		}
		s.selectItem(depth, m.NextItem(sel, forward), false, false)
	case KeyArrowLeft, KeyArrowRight:
		forward := ev.Key == KeyArrowRight
		s.setSticky(true)
		if m.Layout() == menu.LayoutRow {
			s.selectItem(depth, m.NextItem(sel, forward), false, false)
			return
		}
		if forward && sel != nil && sel.Submenu() != nil {
			s.selectItem(depth, sel, true, true)
			return
		}
		if depth == 0 {
			return
		}
		if parent := s.chain[depth-1]; parent.menu.Layout() == menu.LayoutRow {
			s.stepBar(depth-1, forward)
			return
		}
		if !forward {
			s.leaveSubmenu(depth)
		}
	case KeyEnter, KeySpace:
		if sel == nil {
			return
		}
		if sel.Submenu() != nil {
			s.setSticky(true)
			s.selectItem(depth, sel, true, true)
			return
		}
		s.choose(sel)
	case KeyEscape:
		s.cancel(events.CloseEscape)
	case KeyPageUp:
		s.scrollBy(om, -om.visibleRows())
	case KeyPageDown:
		s.scrollBy(om, om.visibleRows())
	case KeyHome:
		s.setSticky(true)
		s.selectItem(depth, m.NextItem(nil, true), false, false)
	case KeyEnd:
		s.setSticky(true)
		s.selectItem(depth, m.NextItem(nil, false), false, false)
	case KeyBackspace:
		if s.typed != "" {
			_, size := utf8.DecodeLastRuneInString(s.typed)
			s.typed = s.typed[:len(s.typed)-size]
		}
	default:
		if ev.Modifiers.Has(menu.CommandKey) {
			s.handleShortcut(ev.Text, ev.Modifiers)
			return
		}
		s.handleText(depth, ev.Text)
	}
}

// handleShortcut chooses the item bound to a command key anywhere in the
// hierarchy.
func (s *Session) handleShortcut(text string, mods menu.Modifiers) {
	r, _ := utf8.DecodeRuneInString(text)
	if text == "" || r == utf8.RuneError {
		return
	}
	if it := s.root.ItemForShortcut(r, mods); it != nil {
		s.choose(it)
	}
}

func (s *Session) handleText(depth int, text string) {
	r, _ := utf8.DecodeRuneInString(text)
	if text == "" || r == utf8.RuneError {
		return
	}
	m := s.chain[depth].menu
	if it := m.ItemForTrigger(r); it != nil {
		if it.Submenu() != nil {
			s.setSticky(true)
			s.selectItem(depth, it, true, true)
			return
		}
		s.selectItem(depth, it, false, false)
		s.choose(it)
		return
	}
	if !s.opts.TypeAhead {
		return
	}
	s.typed += text
	if it := m.BestMatch(s.typed); it != nil {
		s.setSticky(true)
		s.selectItem(depth, it, false, false)
	}
}

// leaveSubmenu closes the menu at depth and keeps its superitem selected.
func (s *Session) leaveSubmenu(depth int) {
	parent := s.chain[depth-1]
	s.closeFrom(depth)
	parent.clearNav()
	s.paint(parent)
}

// stepBar moves the selection of the row menu at depth and opens the next
// item's submenu.
func (s *Session) stepBar(depth int, forward bool) {
	bar := s.chain[depth]
	next := bar.menu.NextItem(bar.menu.Selected(), forward)
	s.selectItem(depth, next, true, true)
}
