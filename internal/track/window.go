package track

import (
	"image"
	"time"

	"github.com/atomicstack/menukit/internal/menu"
)

// Window is an on-screen surface showing one menu.
type Window interface {
	SetFrame(frame image.Rectangle)
	Show() error
	Hide()
	Destroy()
	// Paint replaces the window content. Lines are frame-width strings,
	// one per row.
	Paint(lines []string)
}

// WindowSystem creates menu windows and reports the usable screen area.
type WindowSystem interface {
	CreateMenuWindow(frame image.Rectangle) (Window, error)
	ScreenFrame() image.Rectangle
}

// View describes what a renderer should draw for an open menu.
type View struct {
	Size          image.Point
	Scroll        int
	Scrollers     bool
	CanScrollUp   bool
	CanScrollDown bool
	ShowTriggers  bool
	// AltAsCommand names alt instead of ctrl in shortcut labels.
	AltAsCommand bool
}

// Renderer turns a laid out menu into window lines.
type Renderer interface {
	Render(m *menu.Menu, v View) []string
}

// Clock supplies monotonic time to the session.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Observer receives session lifecycle notifications.
type Observer interface {
	SessionStarted(root *menu.Menu, sticky bool)
	SubmenuOpened(m *menu.Menu)
	SubmenuFailed(m *menu.Menu, err error)
	SessionEnded(root *menu.Menu, res Result)
}

type nopObserver struct{}

func (nopObserver) SessionStarted(*menu.Menu, bool) {}
func (nopObserver) SubmenuOpened(*menu.Menu)        {}
func (nopObserver) SubmenuFailed(*menu.Menu, error) {}
func (nopObserver) SessionEnded(*menu.Menu, Result) {}
