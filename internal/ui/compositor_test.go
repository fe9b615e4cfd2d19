package ui

import (
	"errors"
	"image"
	"testing"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/render"
	"github.com/atomicstack/menukit/internal/testutil"
	"github.com/atomicstack/menukit/internal/track"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestComposeOverlaysVisibleWindows(t *testing.T) {
	c := NewCompositor(10, 3)
	w, err := c.CreateMenuWindow(image.Rect(2, 1, 6, 2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w.Paint([]string{"abcd"})

	got := c.Compose([]string{"..........", "..........", ".........."})
	if got[1] != ".........." {
		t.Fatalf("hidden window should not be drawn, got %q", got[1])
	}

	if err := w.Show(); err != nil {
		t.Fatalf("show: %v", err)
	}
	got = c.Compose([]string{"..........", "..........", ".........."})
	if got[0] != ".........." || got[1] != "..abcd...." || got[2] != ".........." {
		t.Fatalf("unexpected composition %q", got)
	}
}

func TestComposePadsAndStacksWindows(t *testing.T) {
	c := NewCompositor(8, 2)
	bottom, _ := c.CreateMenuWindow(image.Rect(0, 0, 6, 1))
	top, _ := c.CreateMenuWindow(image.Rect(3, 0, 8, 1))
	bottom.Paint([]string{"aaaaaa"})
	top.Paint([]string{"bb"})
	_ = bottom.Show()
	_ = top.Show()

	got := c.Compose(nil)
	if len(got) != 2 {
		t.Fatalf("expected one line per row, got %d", len(got))
	}
	if got[0] != "aaabb   " {
		t.Fatalf("expected the later window on top, got %q", got[0])
	}
	if got[1] != "        " {
		t.Fatalf("expected a blank row, got %q", got[1])
	}

	top.Destroy()
	if got := c.Compose(nil); got[0] != "aaaaaa  " {
		t.Fatalf("expected destroyed window removed, got %q", got[0])
	}
	if len(c.Visible()) != 1 {
		t.Fatalf("expected one visible window, got %v", c.Visible())
	}
}

func TestComposeClipsAtScreenEdge(t *testing.T) {
	c := NewCompositor(6, 1)
	w, _ := c.CreateMenuWindow(image.Rect(4, 0, 8, 1))
	w.Paint([]string{"wxyz"})
	_ = w.Show()
	if got := c.Compose(nil); got[0] != "    wx" {
		t.Fatalf("expected clipped window, got %q", got[0])
	}
}

func TestComposeKeepsStyledBackground(t *testing.T) {
	c := NewCompositor(6, 1)
	w, _ := c.CreateMenuWindow(image.Rect(1, 0, 3, 1))
	w.Paint([]string{"ab"})
	_ = w.Show()
	base := lipgloss.NewStyle().Bold(true).Render("123456")
	got := c.Compose([]string{base})
	if ansi.Strip(got[0]) != "1ab456" {
		t.Fatalf("unexpected styled composition %q", ansi.Strip(got[0]))
	}
	if ansi.StringWidth(got[0]) != 6 {
		t.Fatalf("expected width 6, got %d", ansi.StringWidth(got[0]))
	}
}

func TestCreateWindowNeedsScreen(t *testing.T) {
	c := NewCompositor(0, 0)
	if _, err := c.CreateMenuWindow(image.Rect(0, 0, 2, 2)); !errors.Is(err, ErrNoScreen) {
		t.Fatalf("expected ErrNoScreen, got %v", err)
	}
	c.Resize(20, 5)
	if c.ScreenFrame() != image.Rect(0, 0, 20, 5) {
		t.Fatalf("unexpected screen %v", c.ScreenFrame())
	}
	if _, err := c.CreateMenuWindow(image.Rect(0, 0, 2, 2)); err != nil {
		t.Fatalf("create after resize: %v", err)
	}
}

func TestChangesCoalesce(t *testing.T) {
	c := NewCompositor(4, 1)
	w, _ := c.CreateMenuWindow(image.Rect(0, 0, 2, 1))
	w.Paint([]string{"a"})
	_ = w.Show()
	select {
	case <-c.Changes():
	default:
		t.Fatalf("expected a change signal")
	}
	select {
	case <-c.Changes():
		t.Fatalf("expected signals to coalesce")
	default:
	}
}

func TestComposeRenderedMenuGolden(t *testing.T) {
	m := menu.New("Edit", menu.LayoutColumn)
	copyItem := menu.NewItem("Copy", nil)
	copyItem.SetShortcut('c', 0)
	m.AddItem(copyItem)
	paste := menu.NewItem("Paste", nil)
	paste.SetMarked(true)
	m.AddItem(paste)
	more := menu.New("More", menu.LayoutColumn)
	more.AddItem(menu.NewItem("x", nil))
	m.AddSubmenu(more)

	size := m.Bounds().Size()
	c := NewCompositor(20, 4)
	w, err := c.CreateMenuWindow(image.Rectangle{Min: image.Pt(1, 0), Max: image.Pt(1, 0).Add(size)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w.Paint(render.New(nil).Render(m, track.View{Size: size}))
	_ = w.Show()
	testutil.AssertGolden(t, "ui_edit_screen.golden", c.Compose(nil))
}
