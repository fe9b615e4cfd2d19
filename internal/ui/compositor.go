package ui

import (
	"errors"
	"image"
	"strings"
	"sync"

	"github.com/atomicstack/menukit/internal/track"
	"github.com/charmbracelet/x/ansi"
)

var ErrNoScreen = errors.New("ui: screen has no size")

// Compositor keeps the menu windows of a terminal screen in z-order. A
// tracking session draws through it while the Bubble Tea program composes it
// over the background in View.
type Compositor struct {
	mu      sync.Mutex
	screen  image.Rectangle
	windows []*window
	changes chan struct{}
}

// NewCompositor returns a compositor for a width x height screen.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		screen:  image.Rect(0, 0, width, height),
		changes: make(chan struct{}, 1),
	}
}

// CreateMenuWindow implements track.WindowSystem. New windows stack on top.
func (c *Compositor) CreateMenuWindow(frame image.Rectangle) (track.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screen.Empty() {
		return nil, ErrNoScreen
	}
	w := &window{c: c, frame: frame}
	c.windows = append(c.windows, w)
	return w, nil
}

// ScreenFrame implements track.WindowSystem.
func (c *Compositor) ScreenFrame() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Resize changes the screen size. Open windows keep their frames.
func (c *Compositor) Resize(width, height int) {
	c.mu.Lock()
	c.screen = image.Rect(0, 0, width, height)
	c.mu.Unlock()
	c.notify()
}

// Changes signals after any window or screen change. Signals coalesce.
func (c *Compositor) Changes() <-chan struct{} { return c.changes }

// Visible returns the frames of visible windows, bottom first.
func (c *Compositor) Visible() []image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []image.Rectangle
	for _, w := range c.windows {
		if w.visible {
			out = append(out, w.frame)
		}
	}
	return out
}

// Compose draws every visible window over base and returns exactly one line
// per screen row.
func (c *Compositor) Compose(base []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := c.screen.Dy()
	width := c.screen.Dx()
	out := make([]string, rows)
	for y := 0; y < rows; y++ {
		line := ""
		if y < len(base) {
			line = base[y]
		}
		out[y] = fitLine(line, width)
	}
	for _, w := range c.windows {
		if !w.visible {
			continue
		}
		for i, text := range w.lines {
			y := w.frame.Min.Y + i
			if y < 0 || y >= rows || i >= w.frame.Dy() {
				continue
			}
			out[y] = overlay(out[y], text, w.frame.Min.X, w.frame.Dx(), width)
		}
	}
	return out
}

func (c *Compositor) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

func (c *Compositor) remove(w *window) {
	for i, o := range c.windows {
		if o == w {
			c.windows = append(c.windows[:i], c.windows[i+1:]...)
			return
		}
	}
}

// window is one menu surface. All fields are guarded by the compositor lock.
type window struct {
	c       *Compositor
	frame   image.Rectangle
	visible bool
	lines   []string
}

func (w *window) SetFrame(frame image.Rectangle) {
	w.c.mu.Lock()
	w.frame = frame
	w.c.mu.Unlock()
	w.c.notify()
}

func (w *window) Show() error {
	w.c.mu.Lock()
	w.visible = true
	w.c.mu.Unlock()
	w.c.notify()
	return nil
}

func (w *window) Hide() {
	w.c.mu.Lock()
	w.visible = false
	w.c.mu.Unlock()
	w.c.notify()
}

func (w *window) Destroy() {
	w.c.mu.Lock()
	w.visible = false
	w.c.remove(w)
	w.c.mu.Unlock()
	w.c.notify()
}

func (w *window) Paint(lines []string) {
	cp := make([]string, len(lines))
	copy(cp, lines)
	w.c.mu.Lock()
	w.lines = cp
	w.c.mu.Unlock()
	w.c.notify()
}

// fitLine pads or cuts line to exactly width cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}

// overlay replaces the cells [x, x+w) of line with text.
func overlay(line, text string, x, w, width int) string {
	if w <= 0 || x >= width || x+w <= 0 {
		return line
	}
	text = fitLine(text, w)
	if x < 0 {
		text = ansi.Cut(text, -x, w)
		w += x
		x = 0
	}
	if x+w > width {
		text = ansi.Truncate(text, width-x, "")
		w = width - x
	}
	left := ansi.Truncate(line, x, "")
	right := ansi.Cut(line, x+w, width)
	return left + text + right
}
