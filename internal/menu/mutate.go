package menu

import (
	"image"
	"sort"
)

// AddItem appends item. It fails for nil items, items owned by another menu
// and matrix menus, which need a frame.
func (m *Menu) AddItem(item *Item) bool {
	return m.AddItemAt(item, len(m.items))
}

// AddItemAt inserts item at index, which must lie in [0, CountItems()].
func (m *Menu) AddItemAt(item *Item, index int) bool {
	if m.layout == LayoutMatrix {
		return false
	}
	return m.addItem(item, index)
}

// AddItemFrame appends item with an explicit frame. Only matrix menus accept
// frames.
func (m *Menu) AddItemFrame(item *Item, frame image.Rectangle) bool {
	if m.layout != LayoutMatrix || item == nil {
		return false
	}
	if !m.addItem(item, len(m.items)) {
		return false
	}
	item.frame = frame.Canon()
	return true
}

// AddSubmenu appends a new item opening sub.
func (m *Menu) AddSubmenu(sub *Menu) bool {
	return m.AddSubmenuAt(sub, len(m.items))
}

// AddSubmenuAt inserts a new item opening sub at index. sub may not be m or
// one of its supermenus.
func (m *Menu) AddSubmenuAt(sub *Menu, index int) bool {
	if sub == nil || sub.superitem != nil || index < 0 || index > len(m.items) {
		return false
	}
	for up := m; up != nil; up = up.Supermenu() {
		if up == sub {
			return false
		}
	}
	item := NewSubmenuItem(sub)
	if !m.AddItemAt(item, index) {
		sub.superitem = nil
		return false
	}
	return true
}

// AddSeparator appends a separator item.
func (m *Menu) AddSeparator() bool {
	return m.AddItem(NewSeparator())
}

// AddList inserts items starting at index. Nothing is added unless every
// item can be.
func (m *Menu) AddList(items []*Item, index int) bool {
	if m.layout == LayoutMatrix || index < 0 || index > len(m.items) {
		return false
	}
	seen := make(map[*Item]struct{}, len(items))
	for _, it := range items {
		if it == nil || it.menu != nil {
			return false
		}
		if _, dup := seen[it]; dup {
			return false
		}
		seen[it] = struct{}{}
	}
	for i, it := range items {
		m.addItem(it, index+i)
	}
	return true
}

func (m *Menu) addItem(item *Item, index int) bool {
	if item == nil || item.menu != nil || index < 0 || index > len(m.items) {
		return false
	}
	if item.submenu == m {
		return false
	}
	m.items = append(m.items, nil)
	copy(m.items[index+1:], m.items[index:])
	m.items[index] = item
	item.menu = m
	item.selected = false
	if item.marked {
		m.itemMarked(item)
	}
	m.triggersValid = false
	m.invalidateFrom(index)
	return true
}

// RemoveItem removes item. It reports whether the item was present.
func (m *Menu) RemoveItem(item *Item) bool {
	index := m.IndexOf(item)
	if index < 0 {
		return false
	}
	return m.RemoveItems(index, 1)
}

// RemoveItemAt removes and returns the item at index, or nil.
func (m *Menu) RemoveItemAt(index int) *Item {
	item := m.ItemAt(index)
	if item == nil {
		return nil
	}
	m.RemoveItems(index, 1)
	return item
}

// RemoveSubmenu removes the item that opens sub.
func (m *Menu) RemoveSubmenu(sub *Menu) bool {
	index := m.IndexOfSubmenu(sub)
	if index < 0 {
		return false
	}
	return m.RemoveItems(index, 1)
}

// RemoveItems removes count items starting at index. The range is clipped to
// the list; an index outside it fails.
func (m *Menu) RemoveItems(index, count int) bool {
	if index < 0 || index >= len(m.items) || count < 0 {
		return false
	}
	end := index + count
	if end > len(m.items) {
		end = len(m.items)
	}
	for _, it := range m.items[index:end] {
		m.detach(it)
	}
	m.items = append(m.items[:index], m.items[end:]...)
	m.triggersValid = false
	m.invalidateFrom(index)
	return true
}

func (m *Menu) detach(it *Item) {
	if m.selected == it {
		m.selected = nil
	}
	it.selected = false
	it.menu = nil
}

// ReplaceItem swaps in item at index and returns the old one. It returns nil
// and leaves the menu untouched when the index or item is invalid.
func (m *Menu) ReplaceItem(index int, item *Item) *Item {
	old := m.ItemAt(index)
	if old == nil || item == nil || item.menu != nil || item.submenu == m {
		return nil
	}
	m.detach(old)
	m.items[index] = item
	item.menu = m
	item.selected = false
	if m.layout == LayoutMatrix {
		item.frame = old.frame
	}
	if item.marked {
		m.itemMarked(item)
	}
	m.triggersValid = false
	m.invalidateFrom(index)
	return old
}

// MoveItem moves the item at from to position to.
func (m *Menu) MoveItem(from, to int) bool {
	n := len(m.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	it := m.items[from]
	if from < to {
		copy(m.items[from:to], m.items[from+1:to+1])
	} else {
		copy(m.items[to+1:from+1], m.items[to:from])
	}
	m.items[to] = it
	m.swapMatrixFrames(from, to)
	m.invalidateFrom(minInt(from, to))
	return true
}

// SwapItems exchanges the items at a and b.
func (m *Menu) SwapItems(a, b int) bool {
	n := len(m.items)
	if a < 0 || a >= n || b < 0 || b >= n {
		return false
	}
	if a == b {
		return true
	}
	m.items[a], m.items[b] = m.items[b], m.items[a]
	if m.layout == LayoutMatrix {
		m.items[a].frame, m.items[b].frame = m.items[b].frame, m.items[a].frame
	}
	m.invalidateFrom(minInt(a, b))
	return true
}

// SortItems stably reorders the items. cmp returns a negative number when a
// sorts before b.
func (m *Menu) SortItems(cmp func(a, b *Item) int) {
	if cmp == nil || len(m.items) < 2 {
		return
	}
	sort.SliceStable(m.items, func(i, j int) bool { return cmp(m.items[i], m.items[j]) < 0 })
	m.invalidateFrom(0)
}

// matrix frames belong to positions, not items
func (m *Menu) swapMatrixFrames(from, to int) {
	if m.layout != LayoutMatrix {
		return
	}
	lo, hi := minInt(from, to), maxInt(from, to)
	frames := make([]image.Rectangle, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		frames = append(frames, m.items[i].frame)
	}
	if from < to {
		frames = append(frames[len(frames)-1:], frames[:len(frames)-1]...)
	} else {
		frames = append(frames[1:], frames[0])
	}
	for i := lo; i <= hi; i++ {
		m.items[i].frame = frames[i-lo]
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
