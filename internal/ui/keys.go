package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/track"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Backspace key.Binding
	Tab       key.Binding
	Space     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous item")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "close submenu")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open submenu")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "erase type-ahead")),
		Tab:       key.NewBinding(key.WithKeys("tab")),
		Space:     key.NewBinding(key.WithKeys(" ")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// translate turns a terminal key press into a session event. The command key
// is ctrl unless altAsCommand is set, in which case alt takes its place and
// ctrl is reported as a plain control modifier.
func (k keyMap) translate(msg tea.KeyMsg, altAsCommand bool) (track.Event, bool) {
	if key.Matches(msg, k.Quit) {
		return track.Event{Kind: track.Quit}, true
	}
	named := []struct {
		b   key.Binding
		key byte
	}{
		{k.Up, track.KeyArrowUp},
		{k.Down, track.KeyArrowDown},
		{k.Left, track.KeyArrowLeft},
		{k.Right, track.KeyArrowRight},
		{k.Home, track.KeyHome},
		{k.End, track.KeyEnd},
		{k.PageUp, track.KeyPageUp},
		{k.PageDown, track.KeyPageDown},
		{k.Enter, track.KeyEnter},
		{k.Escape, track.KeyEscape},
		{k.Backspace, track.KeyBackspace},
		{k.Tab, track.KeyTab},
		{k.Space, track.KeySpace},
	}
	for _, n := range named {
		if key.Matches(msg, n.b) {
			return track.Event{Kind: track.KeyDown, Key: n.key}, true
		}
	}

	s := msg.String()
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok && utf8.RuneCountInString(rest) == 1 {
		mods := menu.CommandKey
		if altAsCommand {
			mods = menu.ControlKey
		}
		return keyText(rest, mods), true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return track.Event{}, false
	}
	text := string(msg.Runes)
	if !msg.Alt {
		return keyText(text, 0), true
	}
	if altAsCommand {
		return keyText(text, menu.CommandKey), true
	}
	return keyText(text, menu.OptionKey), true
}

func keyText(text string, mods menu.Modifiers) track.Event {
	ev := track.Event{Kind: track.KeyDown, Text: text, Modifiers: mods}
	if len(text) == 1 {
		ev.Key = text[0]
	}
	if r, _ := utf8.DecodeRuneInString(text); r >= 'A' && r <= 'Z' {
		ev.Modifiers |= menu.ShiftKey
	}
	return ev
}
