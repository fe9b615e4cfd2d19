package track

import (
	"errors"
	"image"
	"time"

	"github.com/atomicstack/menukit/internal/menu"
)

var errNoWindows = errors.New("out of windows")

type fakeWindow struct {
	frame     image.Rectangle
	visible   bool
	destroyed bool
	lines     []string
}

func (w *fakeWindow) SetFrame(frame image.Rectangle) { w.frame = frame }
func (w *fakeWindow) Show() error                    { w.visible = true; return nil }
func (w *fakeWindow) Hide()                          { w.visible = false }
func (w *fakeWindow) Destroy()                       { w.destroyed = true }
func (w *fakeWindow) Paint(lines []string)           { w.lines = lines }

type fakeWindowSystem struct {
	screen  image.Rectangle
	windows []*fakeWindow
	// failAt makes the n-th creation (1-based) fail.
	failAt int
	calls  int
}

func newFakeWindowSystem(w, h int) *fakeWindowSystem {
	return &fakeWindowSystem{screen: image.Rect(0, 0, w, h)}
}

func (ws *fakeWindowSystem) CreateMenuWindow(frame image.Rectangle) (Window, error) {
	ws.calls++
	if ws.failAt > 0 && ws.calls == ws.failAt {
		return nil, errNoWindows
	}
	w := &fakeWindow{frame: frame}
	ws.windows = append(ws.windows, w)
	return w, nil
}

func (ws *fakeWindowSystem) ScreenFrame() image.Rectangle { return ws.screen }

func (ws *fakeWindowSystem) visible() []*fakeWindow {
	var out []*fakeWindow
	for _, w := range ws.windows {
		if w.visible && !w.destroyed {
			out = append(out, w)
		}
	}
	return out
}

type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingRenderer struct {
	views map[string]View
}

func (r *recordingRenderer) Render(m *menu.Menu, v View) []string {
	if r.views == nil {
		r.views = make(map[string]View)
	}
	r.views[m.Name()] = v
	return make([]string, v.Size.Y)
}

type recordingTarget struct {
	msgs []*menu.Message
}

func (t *recordingTarget) Post(msg *menu.Message) error {
	t.msgs = append(t.msgs, msg)
	return nil
}

type countingObserver struct {
	started, opened, failed, ended int
	last                           Result
}

func (o *countingObserver) SessionStarted(*menu.Menu, bool) { o.started++ }
func (o *countingObserver) SubmenuOpened(*menu.Menu)        { o.opened++ }
func (o *countingObserver) SubmenuFailed(*menu.Menu, error) { o.failed++ }
func (o *countingObserver) SessionEnded(_ *menu.Menu, r Result) {
	o.ended++
	o.last = r
}

// fileMenu builds New, Open, Recent > (a.txt, b.txt), Quit.
func fileMenu(target menu.Target) (*menu.Menu, *menu.Menu) {
	root := menu.New("File", menu.LayoutColumn)
	root.AddItem(menu.NewItem("New", menu.NewMessage(1)))
	root.AddItem(menu.NewItem("Open", menu.NewMessage(2)))
	recent := menu.New("Recent", menu.LayoutColumn)
	recent.AddItem(menu.NewItem("a.txt", menu.NewMessage(10)))
	recent.AddItem(menu.NewItem("b.txt", menu.NewMessage(11)))
	root.AddSubmenu(recent)
	root.AddItem(menu.NewItem("Quit", menu.NewMessage(3)))
	root.SetTargetForItems(target)
	return root, recent
}

func pointer(kind EventKind, x, y int, buttons uint32) Event {
	return Event{Kind: kind, Point: image.Pt(x, y), Buttons: buttons}
}

func key(k byte) Event { return Event{Kind: KeyDown, Key: k} }

func text(s string) Event { return Event{Kind: KeyDown, Text: s} }
