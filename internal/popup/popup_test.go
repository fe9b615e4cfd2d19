package popup

import (
	"context"
	"errors"
	"image"
	"runtime"
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/track"
)

var errNoWindows = errors.New("out of windows")

type stubWindow struct{}

func (stubWindow) SetFrame(image.Rectangle) {}
func (stubWindow) Show() error              { return nil }
func (stubWindow) Hide()                    {}
func (stubWindow) Destroy()                 {}
func (stubWindow) Paint([]string)           {}

type stubWindowSystem struct{ fail bool }

func (ws stubWindowSystem) CreateMenuWindow(image.Rectangle) (track.Window, error) {
	if ws.fail {
		return nil, errNoWindows
	}
	return stubWindow{}, nil
}

func (stubWindowSystem) ScreenFrame() image.Rectangle { return image.Rect(0, 0, 80, 24) }

func testMenu() *menu.Menu {
	m := menu.New("Actions", menu.LayoutColumn)
	m.AddItem(menu.NewItem("New", menu.NewMessage(1)))
	m.AddItem(menu.NewItem("Open", menu.NewMessage(2)))
	m.AddItem(menu.NewItem("Quit", menu.NewMessage(3)))
	return m
}

func feed(evs ...track.Event) chan track.Event {
	ch := make(chan track.Event, len(evs)+1)
	for _, ev := range evs {
		ch <- ev
	}
	return ch
}

func keyEvent(k byte) track.Event { return track.Event{Kind: track.KeyDown, Key: k} }

func pointerEvent(kind track.EventKind, x, y int, buttons uint32) track.Event {
	return track.Event{Kind: kind, Point: image.Pt(x, y), Buttons: buttons}
}

func TestGoReturnsChosenItem(t *testing.T) {
	m := testMenu()
	var got *menu.Message
	m.SetTargetForItems(menu.TargetFunc(func(msg *menu.Message) error {
		got = msg
		return nil
	}))
	p := New(m, stubWindowSystem{}, nil, feed(keyEvent(track.KeyArrowDown), keyEvent(track.KeyEnter)), Config{})
	item, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{OpenAnyway: true, SelectFirst: true, Deliver: true})
	if err != nil {
		t.Fatalf("go: %v", err)
	}
	if item == nil || item.Label() != "Open" {
		t.Fatalf("expected Open, got %v", item)
	}
	if got == nil || got.What != 2 {
		t.Fatalf("expected Open delivered, got %v", got)
	}
	if m.IsTracking() {
		t.Fatalf("expected tracking released")
	}
}

func TestGoCancelReturnsNil(t *testing.T) {
	m := testMenu()
	p := New(m, stubWindowSystem{}, nil, feed(keyEvent(track.KeyEscape)), Config{})
	item, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{OpenAnyway: true})
	if err != nil || item != nil {
		t.Fatalf("expected nil item and error, got %v %v", item, err)
	}
}

func TestGoWhileTrackingIsBusy(t *testing.T) {
	m := testMenu()
	if !m.BeginTracking() {
		t.Fatalf("expected to claim the menu")
	}
	p := New(m, stubWindowSystem{}, nil, feed(), Config{})
	item, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{})
	if !errors.Is(err, ErrBusy) || item != nil {
		t.Fatalf("expected ErrBusy, got %v %v", item, err)
	}
}

func TestGoReportsWindowFailure(t *testing.T) {
	m := testMenu()
	p := New(m, stubWindowSystem{fail: true}, nil, feed(), Config{})
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{}); !errors.Is(err, errNoWindows) {
		t.Fatalf("expected window error, got %v", err)
	}
	if m.IsTracking() {
		t.Fatalf("expected tracking released after failure")
	}
}

func TestGoAsyncDeliversOnResults(t *testing.T) {
	m := testMenu()
	input := make(chan track.Event, 4)
	p := New(m, stubWindowSystem{}, nil, input, Config{})
	item, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{Async: true, OpenAnyway: true, SelectFirst: true})
	if item != nil || err != nil {
		t.Fatalf("async go should return nil, got %v %v", item, err)
	}
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected second go to be busy, got %v", err)
	}
	input <- keyEvent(track.KeyEnter)
	select {
	case out := <-p.Results():
		if out.Err != nil || out.Item == nil || out.Item.Label() != "New" {
			t.Fatalf("unexpected outcome %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
}

func TestAsyncAutoDestructEmptiesMenu(t *testing.T) {
	m := testMenu()
	input := make(chan track.Event, 4)
	p := New(m, stubWindowSystem{}, nil, input, Config{})
	p.SetAsyncAutoDestruct(true)
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{Async: true, OpenAnyway: true}); err != nil {
		t.Fatalf("go: %v", err)
	}
	input <- keyEvent(track.KeyEscape)
	p.Wait()
	if !p.Destroyed() || m.CountItems() != 0 || m.Enabled() {
		t.Fatalf("expected the menu emptied and disabled")
	}
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{}); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
}

func TestGoNeverReclaimsMenuBeingDestroyed(t *testing.T) {
	m := testMenu()
	input := make(chan track.Event, 1)
	p := New(m, stubWindowSystem{}, nil, input, Config{})
	p.SetAsyncAutoDestruct(true)
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{Async: true, OpenAnyway: true}); err != nil {
		t.Fatalf("go: %v", err)
	}
	input <- keyEvent(track.KeyEscape)

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{Async: true, OpenAnyway: true})
		if errors.Is(err, ErrDestroyed) {
			break
		}
		if !errors.Is(err, ErrBusy) {
			t.Fatalf("expected ErrBusy or ErrDestroyed, got %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for the menu to be destroyed")
		}
		runtime.Gosched()
	}
	p.Wait()
	if m.CountItems() != 0 || m.IsTracking() {
		t.Fatalf("expected an empty, released menu")
	}
}

func TestGoUsesClickToOpenAroundPoint(t *testing.T) {
	m := testMenu()
	input := feed(
		pointerEvent(track.PointerUp, 2, 0, 0),
		pointerEvent(track.PointerMoved, 2, 1, 0),
		pointerEvent(track.PointerDown, 2, 1, track.PrimaryButton),
		pointerEvent(track.PointerUp, 2, 1, 0),
	)
	p := New(m, stubWindowSystem{}, nil, input, Config{})
	item, err := p.Go(context.Background(), image.Pt(2, 0), GoOptions{Buttons: track.PrimaryButton})
	if err != nil {
		t.Fatalf("go: %v", err)
	}
	if item == nil || item.Label() != "Open" {
		t.Fatalf("expected the quick release to keep the menu open, got %v", item)
	}
}

func TestCloseQuitsRunningSession(t *testing.T) {
	m := testMenu()
	input := make(chan track.Event)
	p := New(m, stubWindowSystem{}, nil, input, Config{})
	if _, err := p.Go(context.Background(), image.Pt(0, 0), GoOptions{Async: true, OpenAnyway: true}); err != nil {
		t.Fatalf("go: %v", err)
	}
	p.Close()
	select {
	case out := <-p.Results():
		if out.Item != nil {
			t.Fatalf("expected nothing chosen")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for close")
	}
}
