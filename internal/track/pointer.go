package track

import (
	"image"
	"time"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
)

func (s *Session) handlePointer(ev Event) {
	prev := s.buttons
	s.location = ev.Point
	s.buttons = ev.Buttons
	if ev.Kind == PointerDown && s.buttons == 0 {
		s.buttons = PrimaryButton
	}
	s.pointerStale = false
	if !s.releasedOnce && prev != 0 && s.buttons == 0 {
		s.releasedOnce = true
	}

	item := s.trackPointer()
	if s.releasedOnce {
		s.updateClose(item)
	}
}

func (s *Session) handleTick() {
	now := s.clock.Now()
	if s.auto.om != nil {
		if s.scroll.allow(now) {
			s.scrollBy(s.auto.om, s.auto.dir)
		}
		return
	}
	if s.pointerStale {
		return
	}
	// open delays and the navigation timeout expire while the pointer rests
	s.trackPointer()
}

// trackPointer hit-tests the open menus innermost first and updates the
// selection. It returns the enabled item under the pointer.
func (s *Session) trackPointer() *menu.Item {
	for depth := len(s.chain) - 1; depth >= 0; depth-- {
		om := s.chain[depth]
		switch om.region(s.location) {
		case regionOutside:
			continue
		case regionScrollUp:
			s.auto = autoScroll{om: om, dir: -1}
			return nil
		case regionScrollDown:
			s.auto = autoScroll{om: om, dir: 1}
			return nil
		}
		s.auto = autoScroll{}
		item := om.menu.HitTestItems(om.toLocal(s.location), image.Point{})
		if item != nil && item.Enabled() {
			s.openSelect(depth, item)
			s.releasedOnce = true
			return item
		}
		if depth == len(s.chain)-1 {
			s.deselectWithoutSubmenu(depth)
		}
		return nil
	}
	s.auto = autoScroll{}
	if n := len(s.chain); n > 0 {
		s.deselectWithoutSubmenu(n - 1)
	}
	return nil
}

// deselectWithoutSubmenu clears the highlight at depth unless it holds an
// open submenu.
func (s *Session) deselectWithoutSubmenu(depth int) {
	om := s.chain[depth]
	sel := om.menu.Selected()
	if sel == nil || depth+1 < len(s.chain) {
		return
	}
	s.selectItem(depth, nil, false, false)
	om.clearNav()
}

// openSelect moves the highlight to item unless the pointer is travelling
// through the navigation area towards the open submenu; a resting pointer
// opens the submenu of the selected item once the open delay has passed.
func (s *Session) openSelect(depth int, item *menu.Item) {
	om := s.chain[depth]
	now := s.clock.Now()
	sel := om.menu.Selected()

	if item != sel {
		if om.navStart.IsZero() {
			om.navStart = now
		}
		inAbove := s.location.In(om.navAbove)
		inBelow := s.location.In(om.navBelow)
		if sel == nil || (!inAbove && !inBelow) {
			s.selectItem(depth, item, s.opts.OpenDelay <= 0, false)
			s.updateNavArea(depth)
			om.navStart = time.Time{}
			return
		}
		inNav := om.inNavArea(s.location, inAbove)
		if !inNav || now.Sub(om.navStart) > s.opts.NavigationTimeout {
			s.selectItem(depth, item, inNav, false)
			if inNav {
				s.updateNavArea(depth)
			} else {
				om.clearNav()
			}
			om.navStart = time.Time{}
		}
		return
	}

	om.navStart = time.Time{}
	if item.Submenu() != nil && depth+1 >= len(s.chain) && now.Sub(om.selectedAt) >= s.opts.OpenDelay {
		s.selectItem(depth, item, true, false)
	}
	if depth+1 < len(s.chain) {
		s.updateNavArea(depth)
	}
}

// updateNavArea records the two rectangles between the pointer and the open
// submenu in which crossing other items does not change the selection.
func (s *Session) updateNavArea(depth int) {
	om := s.chain[depth]
	if depth+1 >= len(s.chain) {
		om.clearNav()
		return
	}
	sub := s.chain[depth+1].frame
	p := s.location
	if om.frame.Min.X < sub.Min.X {
		om.navLeft = false
		om.navAbove = image.Rectangle{Min: image.Pt(p.X+navThreshold, sub.Min.Y), Max: image.Pt(om.frame.Max.X, p.Y)}
		om.navBelow = image.Rectangle{Min: image.Pt(p.X+navThreshold, p.Y), Max: image.Pt(om.frame.Max.X, sub.Max.Y)}
		return
	}
	om.navLeft = true
	om.navAbove = image.Rectangle{Min: image.Pt(om.frame.Min.X, sub.Min.Y), Max: image.Pt(p.X-navThreshold, p.Y)}
	om.navBelow = image.Rectangle{Min: image.Pt(om.frame.Min.X, p.Y), Max: image.Pt(p.X-navThreshold, sub.Max.Y)}
}

// inNavArea reports whether p lies in the triangle of the navigation
// rectangle that points at the submenu.
func (om *openMenu) inNavArea(p image.Point, above bool) bool {
	var p1, p2 image.Point
	switch r := om.navAbove; {
	case above && !om.navLeft:
		p1, p2 = image.Pt(r.Min.X, r.Max.Y), image.Pt(r.Max.X, r.Min.Y)
	case above:
		p1, p2 = r.Min, r.Max
	case !om.navLeft:
		r = om.navBelow
		p1, p2 = r.Max, r.Min
	default:
		r = om.navBelow
		p1, p2 = image.Pt(r.Max.X, r.Min.Y), image.Pt(r.Min.X, r.Max.Y)
	}
	side := (p1.Y-p2.Y)*p.X + (p2.X-p1.X)*p.Y + (p1.X-p2.X)*p1.Y + (p2.Y-p1.Y)*p1.X
	return side >= 0
}

// underPointer hit-tests the innermost open menu containing the pointer,
// disabled items included. scroller is set over a scroll arrow.
func (s *Session) underPointer() (hit *menu.Item, scroller bool) {
	for depth := len(s.chain) - 1; depth >= 0; depth-- {
		om := s.chain[depth]
		switch om.region(s.location) {
		case regionOutside:
			continue
		case regionBody:
			return om.menu.HitTestItems(om.toLocal(s.location), image.Point{}), false
		}
		return nil, true
	}
	return nil, false
}

// updateClose decides whether a button change ends the session.
func (s *Session) updateClose(item *menu.Item) {
	if s.done {
		return
	}
	switch {
	case s.buttons != 0 && s.sticky:
		if item != nil {
			s.setSticky(false)
			return
		}
		hit, scroller := s.underPointer()
		switch {
		case scroller:
		case hit != nil:
			s.setSticky(false)
		default:
			s.cancel(events.CloseOutside)
		}
	case s.buttons == 0 && !s.sticky:
		if !s.clickToOpen.Empty() && s.location.In(s.clickToOpen) {
			s.setSticky(true)
			s.clickToOpen = image.Rectangle{}
			return
		}
		if item == nil {
			if s.auto.om != nil {
				s.setSticky(true)
				return
			}
			s.cancel(events.CloseOutside)
			return
		}
		if item.Submenu() != nil {
			s.setSticky(true)
			return
		}
		s.choose(item)
	}
}
