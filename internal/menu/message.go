package menu

import (
	"errors"
	"fmt"
	"sort"
)

// Field names added to a message when an item is invoked.
const (
	FieldWhen   = "when"
	FieldSource = "source"
	FieldIndex  = "index"
)

var (
	ErrNoTarget = errors.New("menu: item has no target")
	ErrDisabled = errors.New("menu: item is disabled")
)

// Message is the payload an item posts to its target when invoked.
type Message struct {
	What   uint32
	fields map[string]interface{}
}

// NewMessage returns an empty message with the given command code.
func NewMessage(what uint32) *Message {
	return &Message{What: what}
}

// Clone returns a shallow copy of the message. Field values are shared.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	out := &Message{What: m.What}
	if len(m.fields) > 0 {
		out.fields = make(map[string]interface{}, len(m.fields))
		for k, v := range m.fields {
			out.fields[k] = v
		}
	}
	return out
}

// Set stores a field, replacing any earlier value.
func (m *Message) Set(name string, value interface{}) *Message {
	if m.fields == nil {
		m.fields = make(map[string]interface{})
	}
	m.fields[name] = value
	return m
}

// Get returns the named field.
func (m *Message) Get(name string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.fields[name]
	return v, ok
}

// String returns the named field when it holds a string.
func (m *Message) String(name string) string {
	v, _ := m.Get(name)
	s, _ := v.(string)
	return s
}

// Int64 returns the named field when it holds an int64.
func (m *Message) Int64(name string) (int64, bool) {
	v, ok := m.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// Names lists the field names in sorted order.
func (m *Message) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.fields))
	for k := range m.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Target receives invocation messages. Post must not block for long; the
// tracking session calls it after the menu chain has been torn down.
type Target interface {
	Post(msg *Message) error
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func(msg *Message) error

func (f TargetFunc) Post(msg *Message) error { return f(msg) }

// InvokeInfo carries the fields added to an invoked item's message.
type InvokeInfo struct {
	When   int64
	Source *Menu
	Index  []int
}

// Invoke copies the item's message, annotates it and posts it to the item's
// target.
func (it *Item) Invoke(info InvokeInfo) error {
	if !it.Enabled() {
		return fmt.Errorf("invoke %q: %w", it.label, ErrDisabled)
	}
	target := it.target
	if target == nil {
		return fmt.Errorf("invoke %q: %w", it.label, ErrNoTarget)
	}
	msg := it.message.Clone()
	if msg == nil {
		msg = NewMessage(0)
	}
	msg.Set(FieldWhen, info.When)
	msg.Set(FieldSource, info.Source)
	index := make([]int, len(info.Index))
	copy(index, info.Index)
	msg.Set(FieldIndex, index)
	if err := target.Post(msg); err != nil {
		return fmt.Errorf("invoke %q: %w", it.label, err)
	}
	return nil
}
