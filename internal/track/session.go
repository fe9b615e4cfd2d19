package track

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/menuinfo"
)

const (
	defaultNavigationTimeout = time.Second
	defaultTickInterval      = 50 * time.Millisecond
	defaultScrollInterval    = 80 * time.Millisecond
	navThreshold             = 1
)

var (
	ErrAlreadyOpen = errors.New("track: session already opened")
	ErrNoWindow    = errors.New("track: window system unavailable")
	processStart   = time.Now()
)

// Options configures a tracking session.
type Options struct {
	// Start is the initial pointer location and Buttons the buttons held
	// when tracking begins.
	Start   image.Point
	Buttons uint32
	// Sticky starts the session in click mode: the menu stays open without
	// a held button.
	Sticky bool
	// ClickToOpen is a screen rectangle; releasing the button inside it
	// switches the session to sticky mode instead of closing it.
	ClickToOpen image.Rectangle
	// Anchor is a screen rectangle the root menu is placed below, or above
	// when there is more room there.
	Anchor      image.Rectangle
	SelectFirst bool
	// PointerUnknown means Start is not a real pointer position: nothing is
	// hit-tested until the first pointer event.
	PointerUnknown bool
	Deliver        bool
	TypeAhead      bool

	Info              *menuinfo.Info
	OpenDelay         time.Duration
	NavigationTimeout time.Duration
	TickInterval      time.Duration
	ScrollInterval    time.Duration

	Clock Clock
	// Epoch is the origin of the "when" field. Zero means process start.
	Epoch    time.Time
	Observer Observer
}

// Result reports how a session ended.
type Result struct {
	Item     *menu.Item
	Invoked  bool
	Canceled bool
	Reason   events.CloseReason
	Err      error
}

// Session drives one tracking pass over a menu hierarchy. Handle and Run
// must be called from a single goroutine; Quit may be called from any.
type Session struct {
	root     *menu.Menu
	ws       WindowSystem
	renderer Renderer
	opts     Options
	info     menuinfo.Info
	clock    Clock
	observer Observer
	epoch    time.Time

	chain []*openMenu

	location     image.Point
	buttons      uint32
	sticky       bool
	releasedOnce bool
	clickToOpen  image.Rectangle
	pointerStale bool
	keyboard     bool
	typed        string

	auto   autoScroll
	scroll *throttle

	quit   atomic.Bool
	opened bool
	done   bool
	result Result
}

// NewSession prepares a session for root. Nothing is shown until Open.
func NewSession(root *menu.Menu, ws WindowSystem, r Renderer, opts Options) *Session {
	s := &Session{
		root:     root,
		ws:       ws,
		renderer: r,
		opts:     opts,
		clock:    opts.Clock,
		observer: opts.Observer,
		epoch:    opts.Epoch,
	}
	if opts.Info != nil {
		s.info = *opts.Info
	} else {
		s.info = menuinfo.Get()
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.epoch.IsZero() {
		s.epoch = processStart
	}
	if s.opts.NavigationTimeout <= 0 {
		s.opts.NavigationTimeout = defaultNavigationTimeout
	}
	if s.opts.TickInterval <= 0 {
		s.opts.TickInterval = defaultTickInterval
	}
	if s.opts.ScrollInterval <= 0 {
		s.opts.ScrollInterval = defaultScrollInterval
	}
	s.scroll = newThrottle(s.opts.ScrollInterval)
	return s
}

// Open shows the root menu at where and applies the initial pointer state.
func (s *Session) Open(where image.Point) error {
	if s.opened {
		return ErrAlreadyOpen
	}
	if s.ws == nil {
		return ErrNoWindow
	}
	s.root.SetAltAsCommand(s.info.AltAsCommand)
	om, err := s.show(s.root, where, nil, nil)
	if err != nil {
		s.root.SetTrackingState(menu.StateIdle)
		return fmt.Errorf("open menu %q: %w", s.root.Name(), err)
	}
	s.opened = true
	s.chain = []*openMenu{om}
	s.sticky = s.opts.Sticky
	s.clickToOpen = s.opts.ClickToOpen
	s.location = s.opts.Start
	s.buttons = s.opts.Buttons
	s.releasedOnce = s.buttons == 0

	events.Track.Start(s.root.Name(), s.sticky, where.X, where.Y)
	s.observer.SessionStarted(s.root, s.sticky)

	switch {
	case s.opts.SelectFirst:
		s.keyboard = true
		s.pointerStale = true
		s.selectItem(0, s.root.NextItem(nil, true), false, false)
	case s.opts.PointerUnknown:
		s.pointerStale = true
	default:
		s.trackPointer()
	}
	s.updateStates()
	return nil
}

// Handle feeds one event into the state machine. It returns false once the
// session has ended.
func (s *Session) Handle(ev Event) bool {
	if !s.opened || s.done {
		return false
	}
	if s.quit.Load() {
		s.cancel(events.CloseQuit)
		return false
	}
	if s.hookWantsQuit() {
		s.cancel(events.CloseHook)
		return false
	}
	switch ev.Kind {
	case PointerMoved, PointerDown, PointerUp:
		s.handlePointer(ev)
	case KeyDown:
		s.handleKey(ev)
	case Wheel:
		s.handleWheel(ev)
	case Tick:
		s.handleTick()
	case Quit:
		s.cancel(events.CloseQuit)
	}
	if !s.done {
		s.updateStates()
	}
	return !s.done
}

// Run consumes events until the session ends, the context is cancelled or
// the input channel closes. Ticks are generated internally.
func (s *Session) Run(ctx context.Context, input <-chan Event) Result {
	if !s.opened || s.done {
		return s.result
	}
	p := newPump(ctx, input, s.opts.TickInterval)
	defer p.Stop()
	for ev := range p.Events() {
		if !s.Handle(ev) {
			break
		}
	}
	if !s.done {
		reason := events.CloseInput
		if ctx.Err() != nil {
			reason = events.CloseContext
		}
		s.cancel(reason)
	}
	return s.result
}

// Quit asks the session to close without invoking anything. It takes effect
// on the next event.
func (s *Session) Quit() { s.quit.Store(true) }

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Result returns the outcome once Done is true.
func (s *Session) Result() Result { return s.result }

// Sticky reports whether the session is in click mode.
func (s *Session) Sticky() bool { return s.sticky }

// OpenMenus lists the menus currently shown, root first.
func (s *Session) OpenMenus() []*menu.Menu {
	out := make([]*menu.Menu, len(s.chain))
	for i, om := range s.chain {
		out[i] = om.menu
	}
	return out
}

// FrameOf returns the screen frame of an open menu.
func (s *Session) FrameOf(m *menu.Menu) (image.Rectangle, bool) {
	for _, om := range s.chain {
		if om.menu == m {
			return om.frame, true
		}
	}
	return image.Rectangle{}, false
}

func (s *Session) hookWantsQuit() bool {
	if h := s.root.TrackingHook(); h != nil && h(s.root) {
		return true
	}
	for _, om := range s.chain[1:] {
		if h := om.menu.TrackingHook(); h != nil && h(om.menu) {
			return true
		}
	}
	return false
}

func (s *Session) show(m *menu.Menu, where image.Point, parent *openMenu, superitem *menu.Item) (*openMenu, error) {
	m.RelayoutIfNeeded()
	om := &openMenu{menu: m, content: m.Bounds().Size()}
	if om.content.X == 0 || om.content.Y == 0 {
		om.content = emptySize(m)
	}
	om.frame = s.place(om, where, parent, superitem)
	win, err := s.ws.CreateMenuWindow(om.frame)
	if err != nil {
		return nil, err
	}
	om.window = win
	m.EnsureTriggers()
	s.paint(om)
	if err := win.Show(); err != nil {
		win.Destroy()
		return nil, err
	}
	m.SetTrackingState(menu.StateShowing)
	return om, nil
}

func (s *Session) openSubmenu(depth int, item *menu.Item, selectFirst bool) error {
	parent := s.chain[depth]
	sub := item.Submenu()
	s.scrollIntoView(parent, item)
	om, err := s.show(sub, parent.submenuLocation(item), parent, item)
	if err != nil {
		return err
	}
	s.chain = append(s.chain, om)
	events.Track.SubmenuOpen(sub.Name(), depth+1)
	s.observer.SubmenuOpened(sub)
	if selectFirst {
		s.selectItem(depth+1, sub.NextItem(nil, true), false, false)
	}
	return nil
}

// closeFrom hides every open menu at depth or deeper, innermost first.
func (s *Session) closeFrom(depth int) {
	if depth < 0 {
		depth = 0
	}
	for i := len(s.chain) - 1; i >= depth; i-- {
		om := s.chain[i]
		om.menu.Select(nil, false)
		om.window.Hide()
		om.window.Destroy()
		om.menu.SetTrackingState(menu.StateIdle)
		if i > 0 {
			events.Track.SubmenuClose(om.menu.Name(), i)
		}
		if s.auto.om == om {
			s.auto = autoScroll{}
		}
	}
	if depth < len(s.chain) {
		s.chain = s.chain[:depth]
	}
}

// selectItem highlights item in the menu at depth, closing any submenu of the
// previous selection. With showSubmenu the item's submenu is opened.
func (s *Session) selectItem(depth int, item *menu.Item, showSubmenu, selectFirst bool) {
	om := s.chain[depth]
	m := om.menu
	if item != nil && !item.Enabled() {
		item = nil
	}
	if item != m.Selected() {
		s.closeFrom(depth + 1)
		m.Select(item, false)
		om.failed = nil
		om.selectedAt = s.clock.Now()
		if item != nil {
			s.scrollIntoView(om, item)
			events.Track.Select(m.Name(), m.IndexOf(item), item.Label())
		}
		s.paint(om)
	}
	if item == nil || !showSubmenu || item.Submenu() == nil {
		return
	}
	if depth+1 < len(s.chain) || om.failed == item {
		return
	}
	if err := s.openSubmenu(depth, item, selectFirst); err != nil {
		om.failed = item
		logging.Error(fmt.Errorf("open submenu %q: %w", item.Submenu().Name(), err))
		events.Track.SubmenuFailed(item.Submenu().Name(), err)
		s.observer.SubmenuFailed(item.Submenu(), err)
	}
}

func (s *Session) setSticky(on bool) {
	if s.sticky == on {
		return
	}
	s.sticky = on
	events.Track.Sticky(s.root.Name(), on)
}

func (s *Session) updateStates() {
	for i, om := range s.chain {
		var st menu.State
		switch {
		case i+1 < len(s.chain):
			st = menu.StateSubmenuOpen
		case om.menu.Selected() != nil:
			st = menu.StateItemSelected
		case s.sticky:
			st = menu.StateSticky
		default:
			st = menu.StateShowing
		}
		om.menu.SetTrackingState(st)
	}
}

func (s *Session) cancel(reason events.CloseReason) {
	s.finish(nil, reason)
}

func (s *Session) choose(item *menu.Item) {
	s.finish(item, events.CloseInvoke)
}

// finish tears the chain down and then delivers the chosen item.
func (s *Session) finish(item *menu.Item, reason events.CloseReason) {
	if s.done {
		return
	}
	var info menu.InvokeInfo
	if item != nil {
		src := item.Menu()
		info = menu.InvokeInfo{
			When:   s.clock.Now().Sub(s.epoch).Microseconds(),
			Source: src,
			Index:  []int{src.IndexOf(item)},
		}
	}
	for _, om := range s.chain {
		om.menu.SetTrackingState(menu.StateClosing)
	}
	s.closeFrom(0)
	s.done = true

	s.result = Result{Item: item, Canceled: item == nil, Reason: reason}
	if item != nil && s.opts.Deliver {
		events.Track.Invoke(item.Label(), info.Index[0])
		if err := item.Invoke(info); err != nil {
			logging.Error(err)
			s.result.Err = err
		} else {
			s.result.Invoked = true
		}
	}
	events.Track.Close(s.root.Name(), reason)
	s.observer.SessionEnded(s.root, s.result)
}

func (s *Session) paint(om *openMenu) {
	if om.window == nil {
		return
	}
	v := View{
		Size:          om.frame.Size(),
		Scroll:        om.scroll,
		Scrollers:     om.scrollers,
		CanScrollUp:   om.scroll > 0,
		CanScrollDown: om.scroll < om.maxScroll(),
		ShowTriggers:  s.info.TriggersAlwaysShown || s.keyboard,
		AltAsCommand:  s.info.AltAsCommand,
	}
	var lines []string
	if s.renderer != nil {
		lines = s.renderer.Render(om.menu, v)
	}
	om.window.Paint(lines)
}

func emptySize(m *menu.Menu) image.Point {
	mg := m.ItemMargins()
	return image.Pt(len(menu.EmptyLabel)+mg.Left+mg.Right, 1+mg.Top+mg.Bottom)
}
