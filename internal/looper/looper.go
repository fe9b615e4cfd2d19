// Package looper delivers menu messages to a handler in posting order.
package looper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
)

const DefaultCapacity = 64

var (
	ErrClosed    = errors.New("looper: closed")
	ErrQueueFull = errors.New("looper: queue full")
)

// Handler processes one message. Errors are logged and do not stop the
// looper.
type Handler func(ctx context.Context, msg *menu.Message) error

// Looper is a menu.Target backed by a bounded queue.
type Looper struct {
	name    string
	handler Handler

	mu     sync.RWMutex
	closed bool
	queue  chan *menu.Message
}

// New creates a looper. A capacity below one uses DefaultCapacity.
func New(name string, capacity int, h Handler) *Looper {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Looper{
		name:    name,
		handler: h,
		queue:   make(chan *menu.Message, capacity),
	}
}

func (l *Looper) Name() string { return l.name }

// Post enqueues msg without blocking.
func (l *Looper) Post(msg *menu.Message) error {
	if msg == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		events.Looper.Drop(l.name, msg.What, "closed")
		return fmt.Errorf("post to %s: %w", l.name, ErrClosed)
	}
	select {
	case l.queue <- msg:
		events.Looper.Queue(l.name, msg.What)
		return nil
	default:
		events.Looper.Drop(l.name, msg.What, "full")
		return fmt.Errorf("post to %s: %w", l.name, ErrQueueFull)
	}
}

// Pending reports the number of queued messages.
func (l *Looper) Pending() int { return len(l.queue) }

// Close stops accepting messages. Run drains what is queued and returns.
func (l *Looper) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.queue)
}

// Run delivers messages until the looper is closed and drained or ctx ends.
func (l *Looper) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-l.queue:
			if !ok {
				return nil
			}
			l.deliver(ctx, msg)
		}
	}
}

func (l *Looper) deliver(ctx context.Context, msg *menu.Message) {
	if l.handler == nil {
		events.Looper.Deliver(l.name, msg.What, nil)
		return
	}
	err := l.handler(ctx, msg)
	events.Looper.Deliver(l.name, msg.What, err)
	if err != nil {
		logging.Error(fmt.Errorf("%s: handle message %d: %w", l.name, msg.What, err))
	}
}
