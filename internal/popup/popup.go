// Package popup runs a menu as a pop-up at a screen point.
package popup

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/atomicstack/menukit/internal/track"
)

const resultBuffer = 8

var (
	ErrBusy      = errors.New("popup: menu is already being tracked")
	ErrDestroyed = errors.New("popup: menu was destroyed")
)

// Config holds session settings shared by every Go call.
type Config struct {
	OpenDelay time.Duration
	TypeAhead bool
	Observer  track.Observer
	Clock     track.Clock
}

// GoOptions configures a single pop-up.
type GoOptions struct {
	// Deliver invokes the chosen item after the menu closes.
	Deliver bool
	// OpenAnyway keeps the menu open after the button is released.
	OpenAnyway bool
	// Async returns at once; the outcome arrives on Results.
	Async bool
	// ClickToOpen overrides the rect inside which a release keeps the menu
	// open.
	ClickToOpen image.Rectangle
	// Anchor places the menu below (or above) a screen rect instead of at
	// the given point.
	Anchor      image.Rectangle
	Buttons     uint32
	SelectFirst bool
	// PointerUnknown opens without hit-testing where; nothing is selected
	// until the pointer moves or a key is pressed.
	PointerUnknown bool
}

// Outcome is the result of an asynchronous pop-up.
type Outcome struct {
	Item *menu.Item
	Err  error
}

// PopUpMenu owns a menu and the surfaces it is tracked on.
type PopUpMenu struct {
	menu     *menu.Menu
	ws       track.WindowSystem
	renderer track.Renderer
	input    <-chan track.Event
	cfg      Config

	autoDestruct atomic.Bool
	destroyed    atomic.Bool

	mu      sync.Mutex
	session *track.Session
	results chan Outcome
	wg      sync.WaitGroup
}

// New wraps m. Events for every session are read from input.
func New(m *menu.Menu, ws track.WindowSystem, r track.Renderer, input <-chan track.Event, cfg Config) *PopUpMenu {
	return &PopUpMenu{
		menu:     m,
		ws:       ws,
		renderer: r,
		input:    input,
		cfg:      cfg,
		results:  make(chan Outcome, resultBuffer),
	}
}

func (p *PopUpMenu) Menu() *menu.Menu { return p.menu }

// Results delivers the outcome of asynchronous pop-ups.
func (p *PopUpMenu) Results() <-chan Outcome { return p.results }

// SetAsyncAutoDestruct makes the pop-up empty and disable its menu once an
// asynchronous session ends.
func (p *PopUpMenu) SetAsyncAutoDestruct(on bool) { p.autoDestruct.Store(on) }

func (p *PopUpMenu) AsyncAutoDestruct() bool { return p.autoDestruct.Load() }

// Destroyed reports whether the menu was emptied by auto-destruct.
func (p *PopUpMenu) Destroyed() bool { return p.destroyed.Load() }

// Go shows the menu at where. Synchronous calls block until the menu closes
// and return the chosen item, or nil when the menu was cancelled.
func (p *PopUpMenu) Go(ctx context.Context, where image.Point, o GoOptions) (*menu.Item, error) {
	if p.destroyed.Load() {
		return nil, ErrDestroyed
	}
	name := p.menu.Name()
	if !p.menu.BeginTracking() {
		events.Popup.Busy(name)
		return nil, ErrBusy
	}
	if p.destroyed.Load() {
		p.menu.EndTracking()
		return nil, ErrDestroyed
	}
	events.Popup.Go(name, o.Async, o.OpenAnyway)

	info := menuinfo.Get()
	clickRect := o.ClickToOpen
	if clickRect.Empty() && info.ClickToOpen {
		clickRect = image.Rect(where.X-1, where.Y-1, where.X+2, where.Y+2)
	}
	s := track.NewSession(p.menu, p.ws, p.renderer, track.Options{
		Start:          where,
		Buttons:        o.Buttons,
		Sticky:         o.OpenAnyway,
		ClickToOpen:    clickRect,
		Anchor:         o.Anchor,
		SelectFirst:    o.SelectFirst,
		PointerUnknown: o.PointerUnknown,
		Deliver:        o.Deliver,
		TypeAhead:      p.cfg.TypeAhead,
		Info:           &info,
		OpenDelay:      p.cfg.OpenDelay,
		Clock:          p.cfg.Clock,
		Observer:       p.cfg.Observer,
	})
	if err := s.Open(where); err != nil {
		p.menu.EndTracking()
		logging.Error(err)
		return nil, err
	}
	p.mu.Lock()
	p.session = s
	p.mu.Unlock()

	if !o.Async {
		res := p.run(ctx, s, false)
		return res.Item, res.Err
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		res := p.run(ctx, s, p.autoDestruct.Load())
		select {
		case p.results <- Outcome{Item: res.Item, Err: res.Err}:
		default:
			logging.Errorf("popup %q: result dropped, nobody is reading", name)
		}
	}()
	return nil, nil
}

// Close asks a running session to close without choosing anything.
func (p *PopUpMenu) Close() {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()
	if s != nil {
		s.Quit()
	}
}

// Wait blocks until every asynchronous session has ended.
func (p *PopUpMenu) Wait() { p.wg.Wait() }

// run drives s to the end. With destroy the menu is emptied while the
// session still holds it, so a later Go sees ErrDestroyed and never a menu
// being torn down.
func (p *PopUpMenu) run(ctx context.Context, s *track.Session, destroy bool) track.Result {
	res := s.Run(ctx, p.input)
	p.mu.Lock()
	if p.session == s {
		p.session = nil
	}
	p.mu.Unlock()

	label := ""
	if res.Item != nil {
		label = res.Item.Label()
	}
	if destroy {
		p.destroy()
	}
	p.menu.EndTracking()
	events.Popup.Done(p.menu.Name(), label)
	return res
}

func (p *PopUpMenu) destroy() {
	p.menu.RemoveItems(0, p.menu.CountItems())
	p.menu.SetEnabled(false)
	p.destroyed.Store(true)
}
