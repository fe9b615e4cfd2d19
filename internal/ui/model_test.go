package ui

import (
	"image"
	"testing"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/track"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (*Model, *Harness) {
	t.Helper()
	m := NewModel(NewCompositor(40, 10), nil)
	m.altCommand = func() bool { return false }
	return m, NewHarness(m)
}

func nextEvent(t *testing.T, m *Model) track.Event {
	t.Helper()
	select {
	case ev := <-m.Events():
		return ev
	default:
		t.Fatalf("expected a forwarded event")
		return track.Event{}
	}
}

func TestKeysTranslateToSessionEvents(t *testing.T) {
	m, h := newTestModel(t)
	cases := []struct {
		msg  tea.KeyMsg
		key  byte
		kind track.EventKind
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, track.KeyArrowUp, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyDown}, track.KeyArrowDown, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, track.KeyArrowLeft, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyRight}, track.KeyArrowRight, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, track.KeyEnter, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyEsc}, track.KeyEscape, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyPgDown}, track.KeyPageDown, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyHome}, track.KeyHome, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyBackspace}, track.KeyBackspace, track.KeyDown},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, 0, track.Quit},
	}
	for _, tc := range cases {
		h.Send(tc.msg)
		ev := nextEvent(t, m)
		if ev.Kind != tc.kind || ev.Key != tc.key {
			t.Fatalf("%s: expected kind %d key %#x, got %+v", tc.msg, tc.kind, tc.key, ev)
		}
	}
}

func TestRunesCarryTextAndModifiers(t *testing.T) {
	m, h := newTestModel(t)

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if ev := nextEvent(t, m); ev.Text != "q" || ev.Modifiers != 0 {
		t.Fatalf("expected plain q, got %+v", ev)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}})
	if ev := nextEvent(t, m); ev.Text != "Q" || !ev.Modifiers.Has(menu.ShiftKey) {
		t.Fatalf("expected shifted Q, got %+v", ev)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlO})
	if ev := nextEvent(t, m); ev.Text != "o" || ev.Modifiers != menu.CommandKey {
		t.Fatalf("expected ctrl to act as command, got %+v", ev)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}, Alt: true})
	if ev := nextEvent(t, m); ev.Modifiers != menu.OptionKey {
		t.Fatalf("expected alt as option, got %+v", ev)
	}
}

func TestAltAsCommandSwapsModifiers(t *testing.T) {
	m, h := newTestModel(t)
	m.altCommand = func() bool { return true }

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}, Alt: true})
	if ev := nextEvent(t, m); ev.Modifiers != menu.CommandKey {
		t.Fatalf("expected alt to act as command, got %+v", ev)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlO})
	if ev := nextEvent(t, m); ev.Modifiers != menu.ControlKey {
		t.Fatalf("expected ctrl as control, got %+v", ev)
	}
}

func TestMouseTranslatesToPointerEvents(t *testing.T) {
	m, h := newTestModel(t)

	h.Send(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ev := nextEvent(t, m)
	if ev.Kind != track.PointerDown || ev.Point != image.Pt(3, 2) || ev.Buttons != track.PrimaryButton {
		t.Fatalf("unexpected press %+v", ev)
	}

	h.Send(tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if ev := nextEvent(t, m); ev.Kind != track.PointerMoved || ev.Buttons != track.PrimaryButton {
		t.Fatalf("expected drag motion, got %+v", ev)
	}

	h.Send(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	if ev := nextEvent(t, m); ev.Kind != track.PointerUp || ev.Buttons != 0 || ev.Point != image.Pt(4, 3) {
		t.Fatalf("unexpected release %+v", ev)
	}

	h.Send(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if ev := nextEvent(t, m); ev.Kind != track.Wheel || ev.Delta != 1 {
		t.Fatalf("unexpected wheel %+v", ev)
	}
	h.Send(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if ev := nextEvent(t, m); ev.Delta != -1 {
		t.Fatalf("unexpected wheel %+v", ev)
	}
}

func TestWindowSizeResizesScreen(t *testing.T) {
	m, h := newTestModel(t)
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.comp.ScreenFrame() != image.Rect(0, 0, 60, 20) {
		t.Fatalf("unexpected screen %v", m.comp.ScreenFrame())
	}

	m.FixSize(30, 5)
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 50})
	if m.comp.ScreenFrame() != image.Rect(0, 0, 30, 5) {
		t.Fatalf("fixed size should ignore resizes, got %v", m.comp.ScreenFrame())
	}
}

func TestDoneQuitsProgram(t *testing.T) {
	m, h := newTestModel(t)
	m.SetBackground([]string{"hello"})
	if h.View() == "" {
		t.Fatalf("expected a view before done")
	}
	h.Send(DoneMsg{})
	if !h.Quit() {
		t.Fatalf("expected the program to quit")
	}
	if h.View() != "" {
		t.Fatalf("expected an empty view after done, got %q", h.View())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	select {
	case ev := <-m.Events():
		t.Fatalf("expected no events after done, got %+v", ev)
	default:
	}
}

func TestForwardDropsWhenSessionFallsBehind(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < EventBuffer+3; i++ {
		m.forward(track.Event{Kind: track.PointerMoved})
	}
	if m.Dropped() != 3 {
		t.Fatalf("expected 3 dropped events, got %d", m.Dropped())
	}
}

func TestDoneChannelEndsProgram(t *testing.T) {
	done := make(chan struct{})
	close(done)
	m := NewModel(NewCompositor(10, 2), done)
	h := NewHarness(m)
	h.processCmd(waitForDone(done))
	if !h.Quit() {
		t.Fatalf("expected quit once done is closed")
	}
}
