package ui

import (
	"image"
	"strings"

	"github.com/atomicstack/menukit/internal/track"
	tea "github.com/charmbracelet/bubbletea"
)

// View renders the background with every visible menu window on top.
func (m *Model) View() string {
	if m.finished || m.width <= 0 || m.height <= 0 {
		return ""
	}
	return strings.Join(m.comp.Compose(m.background), "\n")
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	pt := image.Pt(mouse.X, mouse.Y)

	if tea.MouseEvent(mouse).IsWheel() {
		delta := 0
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			delta = -1
		case tea.MouseButtonWheelDown:
			delta = 1
		default:
			return nil
		}
		m.forward(track.Event{Kind: track.Wheel, Point: pt, Buttons: m.buttons, Delta: delta})
		return nil
	}

	switch mouse.Action {
	case tea.MouseActionPress:
		m.buttons |= buttonMask(mouse.Button)
		m.forward(track.Event{Kind: track.PointerDown, Point: pt, Buttons: m.buttons})
	case tea.MouseActionRelease:
		if mask := buttonMask(mouse.Button); mask != 0 {
			m.buttons &^= mask
		} else {
			m.buttons = 0
		}
		m.forward(track.Event{Kind: track.PointerUp, Point: pt, Buttons: m.buttons})
	case tea.MouseActionMotion:
		m.forward(track.Event{Kind: track.PointerMoved, Point: pt, Buttons: m.buttons})
	}
	return nil
}

func buttonMask(b tea.MouseButton) uint32 {
	switch b {
	case tea.MouseButtonLeft:
		return track.PrimaryButton
	case tea.MouseButtonRight:
		return secondaryButton
	case tea.MouseButtonMiddle:
		return tertiaryButton
	default:
		return 0
	}
}
