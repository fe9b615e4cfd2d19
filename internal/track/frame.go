package track

import (
	"image"
	"time"

	"github.com/atomicstack/menukit/internal/menu"
)

type region int

const (
	regionOutside region = iota
	regionBody
	regionScrollUp
	regionScrollDown
)

// openMenu is a menu shown on screen during a session.
type openMenu struct {
	menu    *menu.Menu
	window  Window
	frame   image.Rectangle
	content image.Point

	scroll      int
	scrollers   bool
	shiftedLeft bool

	selectedAt time.Time
	navAbove   image.Rectangle
	navBelow   image.Rectangle
	navLeft    bool
	navStart   time.Time
	failed     *menu.Item
}

func (om *openMenu) itemTop() int {
	if om.scrollers {
		return om.frame.Min.Y + 1
	}
	return om.frame.Min.Y
}

func (om *openMenu) visibleRows() int {
	rows := om.frame.Dy()
	if om.scrollers {
		rows -= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (om *openMenu) maxScroll() int {
	if !om.scrollers {
		return 0
	}
	if n := om.content.Y - om.visibleRows(); n > 0 {
		return n
	}
	return 0
}

func (om *openMenu) region(p image.Point) region {
	if !p.In(om.frame) {
		return regionOutside
	}
	if om.scrollers {
		switch p.Y {
		case om.frame.Min.Y:
			return regionScrollUp
		case om.frame.Max.Y - 1:
			return regionScrollDown
		}
	}
	return regionBody
}

// toLocal converts a screen point to menu-local cells.
func (om *openMenu) toLocal(p image.Point) image.Point {
	return image.Pt(p.X-om.frame.Min.X, p.Y-om.itemTop()+om.scroll)
}

// itemScreenRect converts an item frame to screen cells.
func (om *openMenu) itemScreenRect(it *menu.Item) image.Rectangle {
	return it.Frame().Add(image.Pt(om.frame.Min.X, om.itemTop()-om.scroll))
}

// viewport is the visible part of the menu in local cells.
func (om *openMenu) viewport() image.Rectangle {
	return image.Rect(0, om.scroll, om.content.X, om.scroll+om.visibleRows())
}

// submenuLocation is where a submenu of it opens: right of the item for
// columns, below it for rows.
func (om *openMenu) submenuLocation(it *menu.Item) image.Point {
	r := om.itemScreenRect(it)
	if om.menu.Layout() == menu.LayoutRow {
		return image.Pt(r.Min.X, r.Max.Y)
	}
	return image.Pt(r.Max.X, r.Min.Y)
}

func (om *openMenu) clearNav() {
	om.navAbove = image.Rectangle{}
	om.navBelow = image.Rectangle{}
	om.navStart = time.Time{}
}

// place computes the screen frame of om. Root menus are pushed on screen;
// column submenus flip to the left of their parent when they would leave
// the screen or the parent was already pushed left; row submenus open above
// the bar when there is more room there. Menus taller than the screen are
// clipped and get scroller rows.
func (s *Session) place(om *openMenu, where image.Point, parent *openMenu, superitem *menu.Item) image.Rectangle {
	screen := s.ws.ScreenFrame()
	size := om.content
	frame := image.Rectangle{Min: where, Max: where.Add(size)}

	switch {
	case parent == nil && !s.opts.Anchor.Empty():
		frame = anchoredFrame(s.opts.Anchor, size, screen)
		if frame.Max.X > screen.Max.X {
			frame = frame.Sub(image.Pt(frame.Max.X-screen.Max.X, 0))
			om.shiftedLeft = true
		}
	case parent == nil:
		if frame.Max.X > screen.Max.X {
			frame = frame.Sub(image.Pt(frame.Max.X-screen.Max.X, 0))
			om.shiftedLeft = true
		}
	case parent.menu.Layout() == menu.LayoutRow:
		item := parent.itemScreenRect(superitem)
		if frame.Max.Y > screen.Max.Y {
			below := screen.Max.Y - item.Max.Y
			above := item.Min.Y - screen.Min.Y
			if above > below {
				frame = image.Rectangle{Min: image.Pt(frame.Min.X, item.Min.Y-size.Y), Max: image.Pt(frame.Max.X, item.Min.Y)}
			}
		}
		if frame.Max.X > screen.Max.X {
			frame = frame.Sub(image.Pt(frame.Max.X-screen.Max.X, 0))
			om.shiftedLeft = true
		}
	default:
		item := parent.itemScreenRect(superitem)
		if frame.Max.X > screen.Max.X || parent.shiftedLeft {
			frame = image.Rectangle{Min: image.Pt(item.Min.X-size.X, frame.Min.Y), Max: image.Pt(item.Min.X, frame.Max.Y)}
			om.shiftedLeft = true
		}
	}
	if frame.Min.X < screen.Min.X {
		frame = frame.Add(image.Pt(screen.Min.X-frame.Min.X, 0))
	}

	if size.Y > screen.Dy() {
		frame.Min.Y, frame.Max.Y = screen.Min.Y, screen.Max.Y
		om.scrollers = screen.Dy() >= 3
		return frame
	}
	if frame.Max.Y > screen.Max.Y {
		frame = frame.Sub(image.Pt(0, frame.Max.Y-screen.Max.Y))
	}
	if frame.Min.Y < screen.Min.Y {
		frame = frame.Add(image.Pt(0, screen.Min.Y-frame.Min.Y))
	}
	return frame
}

func anchoredFrame(anchor image.Rectangle, size image.Point, screen image.Rectangle) image.Rectangle {
	frame := image.Rectangle{Min: image.Pt(anchor.Min.X, anchor.Max.Y), Max: image.Pt(anchor.Min.X+size.X, anchor.Max.Y+size.Y)}
	if frame.Max.Y <= screen.Max.Y {
		return frame
	}
	below := screen.Max.Y - anchor.Max.Y
	above := anchor.Min.Y - screen.Min.Y
	if above > below {
		return image.Rectangle{Min: image.Pt(anchor.Min.X, anchor.Min.Y-size.Y), Max: image.Pt(anchor.Min.X+size.X, anchor.Min.Y)}
	}
	return frame
}
