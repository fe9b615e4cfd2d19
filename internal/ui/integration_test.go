package ui

import (
	"context"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/atomicstack/menukit/internal/popup"
	"github.com/atomicstack/menukit/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPopupRunsInsideModel(t *testing.T) {
	root := menu.New("File", menu.LayoutColumn)
	root.AddItem(menu.NewItem("New", menu.NewMessage(1)))
	root.AddItem(menu.NewItem("Open", menu.NewMessage(2)))
	recent := menu.New("Recent", menu.LayoutColumn)
	recent.AddItem(menu.NewItem("a.txt", menu.NewMessage(3)))
	root.AddSubmenu(recent)

	comp := NewCompositor(40, 10)
	model := NewModel(comp, nil)
	model.altCommand = func() bool { return false }
	h := NewHarness(model)

	p := popup.New(root, comp, render.New(nil), model.Events(), popup.Config{})
	if _, err := p.Go(context.Background(), image.Pt(2, 1), popup.GoOptions{Async: true, OpenAnyway: true, SelectFirst: true}); err != nil {
		t.Fatalf("go: %v", err)
	}
	waitFor(t, "the menu window", func() bool { return len(comp.Visible()) == 1 })

	view := ansi.Strip(h.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "New") || !strings.Contains(lines[2], "Open") {
		t.Fatalf("expected the menu at row 1, got %q", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, "the submenu", func() bool { return len(comp.Visible()) == 2 })
	if !strings.Contains(ansi.Strip(h.View()), "a.txt") {
		t.Fatalf("expected the submenu drawn, got %q", ansi.Strip(h.View()))
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	select {
	case out := <-p.Results():
		if out.Err != nil || out.Item == nil || out.Item.Label() != "a.txt" {
			t.Fatalf("unexpected outcome %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the choice")
	}
	waitFor(t, "the windows to close", func() bool { return len(comp.Visible()) == 0 })
}

func TestShortcutLabelsKeepSessionSettings(t *testing.T) {
	menuinfo.SetAltAsCommand(false)
	defer menuinfo.SetAltAsCommand(false)

	root := menu.New("Edit", menu.LayoutColumn)
	copyItem := menu.NewItem("Copy", menu.NewMessage(1))
	copyItem.SetShortcut('c', 0)
	root.AddItem(copyItem)
	more := menu.New("More", menu.LayoutColumn)
	cut := menu.NewItem("Cut", menu.NewMessage(2))
	cut.SetShortcut('x', 0)
	more.AddItem(cut)
	root.AddSubmenu(more)

	comp := NewCompositor(40, 10)
	model := NewModel(comp, nil)
	model.altCommand = func() bool { return false }
	h := NewHarness(model)

	p := popup.New(root, comp, render.New(nil), model.Events(), popup.Config{})
	if _, err := p.Go(context.Background(), image.Pt(0, 0), popup.GoOptions{Async: true, OpenAnyway: true, SelectFirst: true}); err != nil {
		t.Fatalf("go: %v", err)
	}
	waitFor(t, "the menu window", func() bool { return len(comp.Visible()) == 1 })

	menuinfo.SetAltAsCommand(true)
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, "the submenu", func() bool { return len(comp.Visible()) == 2 })

	view := ansi.Strip(h.View())
	if !strings.Contains(view, "ctrl+C") || !strings.Contains(view, "ctrl+X") {
		t.Fatalf("expected ctrl labels from the session settings, got %q", view)
	}
	if strings.Contains(view, "alt+") {
		t.Fatalf("expected no alt labels while the session runs, got %q", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	select {
	case <-p.Results():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the menu to close")
	}
}
