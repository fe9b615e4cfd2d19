package track

import (
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
)

type autoScroll struct {
	om  *openMenu
	dir int
}

// scrollBy moves the viewport of om by delta rows. Submenus of om close
// since their anchor moves.
func (s *Session) scrollBy(om *openMenu, delta int) bool {
	if !om.scrollers || delta == 0 {
		return false
	}
	next := om.scroll + delta
	if limit := om.maxScroll(); next > limit {
		next = limit
	}
	if next < 0 {
		next = 0
	}
	if next == om.scroll {
		return false
	}
	om.scroll = next
	s.closeFrom(s.depthOf(om) + 1)
	events.Track.Scroll(om.menu.Name(), om.scroll)
	s.paint(om)
	return true
}

// scrollIntoView adjusts the viewport so item is fully visible.
func (s *Session) scrollIntoView(om *openMenu, item *menu.Item) {
	if !om.scrollers {
		return
	}
	if item.Frame().In(om.viewport()) {
		return
	}
	rows := om.visibleRows()
	f := item.Frame()
	next := om.scroll
	if f.Min.Y < next {
		next = f.Min.Y
	}
	if upper := next + rows; f.Max.Y > upper {
		next = f.Max.Y - rows
	}
	if limit := om.maxScroll(); next > limit {
		next = limit
	}
	if next < 0 {
		next = 0
	}
	if next != om.scroll {
		om.scroll = next
		events.Track.Scroll(om.menu.Name(), om.scroll)
		s.paint(om)
	}
}

func (s *Session) depthOf(om *openMenu) int {
	for i, o := range s.chain {
		if o == om {
			return i
		}
	}
	return len(s.chain)
}

func (s *Session) handleWheel(ev Event) {
	for i := len(s.chain) - 1; i >= 0; i-- {
		om := s.chain[i]
		if om.region(ev.Point) != regionOutside {
			s.scrollBy(om, ev.Delta)
			return
		}
	}
	if n := len(s.chain); n > 0 {
		s.scrollBy(s.chain[n-1], ev.Delta)
	}
}
