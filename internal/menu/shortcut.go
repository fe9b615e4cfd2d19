package menu

import (
	"strings"
	"unicode"
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint32

const (
	ShiftKey Modifiers = 1 << iota
	CommandKey
	ControlKey
	OptionKey
	MenuKey
)

func (m Modifiers) Has(mask Modifiers) bool { return m&mask == mask }

// ShortcutLabel renders a shortcut the way it appears in the shortcut column.
// With altAsCommand the command key is shown as alt, otherwise as ctrl.
func ShortcutLabel(key rune, mods Modifiers, altAsCommand bool) string {
	if key == 0 {
		return ""
	}
	var b strings.Builder
	if mods.Has(ControlKey) && !(mods.Has(CommandKey) && !altAsCommand) {
		b.WriteString("ctrl+")
	}
	if mods.Has(OptionKey) {
		b.WriteString("opt+")
	}
	if mods.Has(ShiftKey) {
		b.WriteString("shift+")
	}
	if mods.Has(CommandKey) {
		if altAsCommand {
			b.WriteString("alt+")
		} else {
			b.WriteString("ctrl+")
		}
	}
	b.WriteRune(unicode.ToUpper(key))
	return b.String()
}

// ItemForShortcut finds an enabled item bound to key with exactly mods,
// searching submenus depth first. CommandKey is implied.
func (m *Menu) ItemForShortcut(key rune, mods Modifiers) *Item {
	if key == 0 {
		return nil
	}
	mods |= CommandKey
	key = unicode.ToLower(key)
	for _, it := range m.items {
		if it.submenu != nil {
			if found := it.submenu.ItemForShortcut(key, mods); found != nil {
				return found
			}
			continue
		}
		if it.shortcut == 0 || !it.Enabled() {
			continue
		}
		if unicode.ToLower(it.shortcut) == key && it.modifiers == mods {
			return it
		}
	}
	return nil
}
