package menu

import (
	"image"

	"github.com/charmbracelet/lipgloss"
)

// Content lets an item size and paint itself instead of showing a label.
type Content interface {
	PreferredSize() image.Point
	Render(size image.Point, selected bool) []string
}

// Item is a single entry of a menu. An item belongs to at most one menu and
// owns at most one submenu.
type Item struct {
	label   string
	message *Message
	target  Target

	shortcut  rune
	modifiers Modifiers

	userTrigger  rune
	trigger      rune
	triggerIndex int

	enabled   bool
	marked    bool
	selected  bool
	separator bool

	submenu *Menu
	menu    *Menu
	frame   image.Rectangle
	content Content

	size      image.Point
	sizeValid bool
}

// NewItem returns an enabled item with the given label and message.
func NewItem(label string, msg *Message) *Item {
	return &Item{label: label, message: msg, enabled: true, triggerIndex: -1}
}

// NewSeparator returns a non-selectable divider.
func NewSeparator() *Item {
	it := NewItem("", nil)
	it.separator = true
	return it
}

// NewSubmenuItem returns an item labelled with the submenu's name that opens
// sub when selected. It returns nil when sub is already attached to an item.
func NewSubmenuItem(sub *Menu) *Item {
	if sub == nil || sub.superitem != nil {
		return nil
	}
	it := NewItem(sub.Name(), nil)
	it.submenu = sub
	sub.superitem = it
	it.enabled = sub.enabled
	return it
}

// NewContentItem returns an item drawn by c.
func NewContentItem(c Content, msg *Message) *Item {
	it := NewItem("", msg)
	it.content = c
	return it
}

func (it *Item) Label() string { return it.label }

// SetLabel changes the label and invalidates this item's cached size and the
// layout of its menu from this item onwards.
func (it *Item) SetLabel(label string) {
	if it.label == label {
		return
	}
	it.label = label
	it.sizeValid = false
	if it.menu != nil {
		it.menu.invalidateFrom(it.menu.IndexOf(it))
		it.menu.triggersValid = false
	}
}

func (it *Item) Message() *Message { return it.message }

func (it *Item) SetMessage(msg *Message) { it.message = msg }

func (it *Item) Command() uint32 {
	if it.message == nil {
		return 0
	}
	return it.message.What
}

func (it *Item) Target() Target { return it.target }

func (it *Item) SetTarget(t Target) { it.target = t }

// Shortcut returns the keyboard shortcut and its modifiers.
func (it *Item) Shortcut() (rune, Modifiers) { return it.shortcut, it.modifiers }

// SetShortcut sets the shortcut. CommandKey is always implied.
func (it *Item) SetShortcut(key rune, mods Modifiers) {
	if key != 0 {
		mods |= CommandKey
	} else {
		mods = 0
	}
	it.shortcut = key
	it.modifiers = mods
	if it.menu != nil {
		it.menu.invalidateFrom(0)
	}
}

// SetTrigger reserves r as this item's trigger. Zero clears the user trigger.
func (it *Item) SetTrigger(r rune) {
	it.userTrigger = r
	if it.menu != nil {
		it.menu.triggersValid = false
	}
}

// Trigger returns the effective trigger rune, or zero when none applies.
func (it *Item) Trigger() rune {
	if it.userTrigger != 0 {
		return it.userTrigger
	}
	return it.trigger
}

// TriggerIndex is the rune offset of the trigger inside the label, or -1.
func (it *Item) TriggerIndex() int { return it.triggerIndex }

// Enabled reports whether the item can be selected. A disabled menu disables
// every item in it.
func (it *Item) Enabled() bool {
	if it.separator {
		return false
	}
	if it.submenu != nil {
		return it.submenu.Enabled()
	}
	if !it.enabled {
		return false
	}
	if it.menu != nil {
		return it.menu.Enabled()
	}
	return true
}

// SetEnabled changes the enabled flag. For submenu items the submenu is
// enabled or disabled along with it.
func (it *Item) SetEnabled(enabled bool) {
	it.enabled = enabled
	if it.submenu != nil {
		it.submenu.enabled = enabled
	}
}

func (it *Item) Marked() bool { return it.marked }

// SetMarked sets the mark. In a radio menu marking one item unmarks the rest.
func (it *Item) SetMarked(marked bool) {
	if it.marked == marked {
		return
	}
	it.marked = marked
	if marked && it.menu != nil {
		it.menu.itemMarked(it)
	}
}

// Selected reports whether the item is highlighted in its menu.
func (it *Item) Selected() bool { return it.selected }

func (it *Item) IsSeparator() bool { return it.separator }

func (it *Item) Submenu() *Menu { return it.submenu }

// Menu returns the menu the item belongs to, or nil.
func (it *Item) Menu() *Menu { return it.menu }

// Frame is the item's rectangle in menu-local cells.
func (it *Item) Frame() image.Rectangle { return it.frame }

func (it *Item) Content() Content { return it.content }

// ContentSize returns the cached natural size of the item's content.
func (it *Item) ContentSize() image.Point {
	if !it.sizeValid {
		it.size = it.measure()
		it.sizeValid = true
	}
	return it.size
}

func (it *Item) measure() image.Point {
	switch {
	case it.content != nil:
		return it.content.PreferredSize()
	case it.separator:
		return image.Pt(0, 1)
	default:
		return image.Pt(lipgloss.Width(it.label), 1)
	}
}

func (it *Item) selectable() bool {
	return !it.separator && it.Enabled()
}
