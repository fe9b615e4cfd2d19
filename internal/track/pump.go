package track

import (
	"context"
	"sync"
	"time"
)

// pump merges caller input with periodic ticks into one ordered stream.
type pump struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

func newPump(parent context.Context, input <-chan Event, interval time.Duration) *pump {
	ctx, cancel := context.WithCancel(parent)
	p := &pump{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event),
	}
	p.wg.Add(1)
	go p.run(input)
	go func() {
		p.wg.Wait()
		close(p.events)
	}()
	return p
}

// Events is closed when the context ends or the input channel closes.
func (p *pump) Events() <-chan Event {
	return p.events
}

// Stop cancels the pump and waits for its goroutine to exit.
func (p *pump) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *pump) run(input <-chan Event) {
	defer p.wg.Done()

	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		case ev, ok := <-input:
			if !ok {
				return
			}
			if !p.emit(ev) {
				return
			}
		case <-tick:
			if !p.emit(Event{Kind: Tick}) {
				return
			}
		}
	}
}

func (p *pump) emit(ev Event) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.events <- ev:
		return true
	}
}
