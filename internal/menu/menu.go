package menu

import (
	"image"
	"sync/atomic"
)

// EmptyLabel is shown in place of the items of an empty menu.
const EmptyLabel = "<empty>"

// TrackingHook is polled while a menu is tracked. Returning true ends the
// session without invoking anything.
type TrackingHook func(m *Menu) bool

// Menu is an ordered list of items with a layout and tracking state.
//
// A Menu is not safe for concurrent mutation. While a tracking session owns
// it (see BeginTracking) only the session goroutine may touch it.
type Menu struct {
	name   string
	layout Layout
	items  []*Item

	margins         Margins
	maxContentWidth int
	wrapWidth       int

	enabled         bool
	radio           bool
	labelFromMarked bool
	triggersEnabled bool
	triggersValid   bool

	superitem *Item
	selected  *Item
	state     State
	hook      TrackingHook

	layoutValid    bool
	invalidFrom    int
	bounds         image.Rectangle
	preferred      image.Point
	preferredValid bool
	altCommand     *bool

	tracking atomic.Bool
}

// New returns an empty, enabled menu.
func New(name string, layout Layout) *Menu {
	return &Menu{
		name:            name,
		layout:          layout,
		margins:         defaultMargins(layout),
		enabled:         true,
		triggersEnabled: true,
	}
}

func (m *Menu) Name() string { return m.name }

func (m *Menu) Layout() Layout { return m.layout }

// Superitem is the item that opens this menu, or nil for a root menu.
func (m *Menu) Superitem() *Item { return m.superitem }

// Supermenu is the menu holding the superitem, or nil.
func (m *Menu) Supermenu() *Menu {
	if m.superitem == nil {
		return nil
	}
	return m.superitem.menu
}

// Root walks the supermenu chain to its top.
func (m *Menu) Root() *Menu {
	r := m
	for r.Supermenu() != nil {
		r = r.Supermenu()
	}
	return r
}

// Enabled reports whether the menu and all its supermenus are enabled.
func (m *Menu) Enabled() bool {
	if !m.enabled {
		return false
	}
	if super := m.Supermenu(); super != nil {
		return super.Enabled()
	}
	return true
}

// SetEnabled enables or disables the menu together with its superitem.
func (m *Menu) SetEnabled(enabled bool) {
	if m.enabled == enabled {
		return
	}
	m.enabled = enabled
	if m.superitem != nil {
		m.superitem.enabled = enabled
	}
}

func (m *Menu) RadioMode() bool { return m.radio }

// SetRadioMode toggles radio behaviour. Turning it off also turns off
// label-from-marked.
func (m *Menu) SetRadioMode(on bool) {
	m.radio = on
	if !on {
		m.labelFromMarked = false
	}
}

func (m *Menu) LabelFromMarked() bool { return m.labelFromMarked }

// SetLabelFromMarked makes the superitem mirror the marked item's label.
// Enabling it turns on radio mode.
func (m *Menu) SetLabelFromMarked(on bool) {
	m.labelFromMarked = on
	if on {
		m.radio = true
		if marked := m.FindMarked(); marked != nil && m.superitem != nil {
			m.superitem.SetLabel(marked.Label())
		}
	}
}

func (m *Menu) TriggersEnabled() bool { return m.triggersEnabled }

func (m *Menu) SetTriggersEnabled(on bool) { m.triggersEnabled = on }

func (m *Menu) MaxContentWidth() int { return m.maxContentWidth }

// SetMaxContentWidth caps the column width. Zero removes the cap.
func (m *Menu) SetMaxContentWidth(w int) {
	if w < 0 {
		w = 0
	}
	m.maxContentWidth = w
	m.InvalidateLayout()
}

func (m *Menu) ItemMargins() Margins { return m.margins }

func (m *Menu) SetItemMargins(mg Margins) {
	m.margins = mg
	m.InvalidateLayout()
}

func (m *Menu) WrapWidth() int { return m.wrapWidth }

// SetWrapWidth sets the width at which row items wrap. Zero disables wrapping.
func (m *Menu) SetWrapWidth(w int) {
	m.wrapWidth = w
	m.InvalidateLayout()
}

// SetTargetForItems sets t as the target of every item, recursing into
// submenus.
func (m *Menu) SetTargetForItems(t Target) {
	for _, it := range m.items {
		it.target = t
		if it.submenu != nil {
			it.submenu.SetTargetForItems(t)
		}
	}
}

func (m *Menu) TrackingHook() TrackingHook { return m.hook }

func (m *Menu) SetTrackingHook(h TrackingHook) { m.hook = h }

// State returns the tracking state.
func (m *Menu) State() State { return m.state }

// SetTrackingState is called by the tracking session as the menu moves
// through its states.
func (m *Menu) SetTrackingState(s State) { m.state = s }

// BeginTracking claims the menu for a tracking session. It returns false when
// another session already owns it.
func (m *Menu) BeginTracking() bool { return m.tracking.CompareAndSwap(false, true) }

// EndTracking releases the claim taken by BeginTracking.
func (m *Menu) EndTracking() { m.tracking.Store(false) }

// IsTracking reports whether a session owns the menu.
func (m *Menu) IsTracking() bool { return m.tracking.Load() }

func (m *Menu) CountItems() int { return len(m.items) }

// ItemAt returns the item at index, or nil when out of range.
func (m *Menu) ItemAt(index int) *Item {
	if index < 0 || index >= len(m.items) {
		return nil
	}
	return m.items[index]
}

// SubmenuAt returns the submenu of the item at index, or nil.
func (m *Menu) SubmenuAt(index int) *Menu {
	if it := m.ItemAt(index); it != nil {
		return it.submenu
	}
	return nil
}

// Items returns a copy of the item list.
func (m *Menu) Items() []*Item {
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// IndexOf returns the position of item, or -1.
func (m *Menu) IndexOf(item *Item) int {
	for i, it := range m.items {
		if it == item {
			return i
		}
	}
	return -1
}

// IndexOfSubmenu returns the position of the item that opens sub, or -1.
func (m *Menu) IndexOfSubmenu(sub *Menu) int {
	if sub == nil {
		return -1
	}
	for i, it := range m.items {
		if it.submenu == sub {
			return i
		}
	}
	return -1
}

// FindItem searches this menu and then its submenus for an item with the
// given label.
func (m *Menu) FindItem(label string) *Item {
	return m.find(func(it *Item) bool { return !it.separator && it.label == label })
}

// FindCommand searches this menu and its submenus for an item whose message
// has the given command code.
func (m *Menu) FindCommand(what uint32) *Item {
	return m.find(func(it *Item) bool { return it.message != nil && it.message.What == what })
}

func (m *Menu) find(match func(*Item) bool) *Item {
	for _, it := range m.items {
		if match(it) {
			return it
		}
	}
	for _, it := range m.items {
		if it.submenu == nil {
			continue
		}
		if found := it.submenu.find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindMarked returns the first marked item, or nil.
func (m *Menu) FindMarked() *Item {
	for _, it := range m.items {
		if it.marked {
			return it
		}
	}
	return nil
}

// FindMarkedIndex returns the index of the first marked item, or -1.
func (m *Menu) FindMarkedIndex() int {
	for i, it := range m.items {
		if it.marked {
			return i
		}
	}
	return -1
}

// Selected returns the highlighted item, or nil.
func (m *Menu) Selected() *Item { return m.selected }

func (m *Menu) itemMarked(item *Item) {
	if m.radio {
		for _, it := range m.items {
			if it != item && it.marked {
				it.marked = false
			}
		}
	}
	if m.labelFromMarked && m.superitem != nil {
		m.superitem.SetLabel(item.label)
	}
}
