package menu

import (
	"errors"
	"testing"
)

func TestInvokeAnnotatesACopy(t *testing.T) {
	m := newTestMenu()
	var got *Message
	orig := NewMessage(7).Set("output", "open")
	it := NewItem("Open", orig)
	it.SetTarget(TargetFunc(func(msg *Message) error {
		got = msg
		return nil
	}))
	m.AddItem(it)

	if err := it.Invoke(InvokeInfo{When: 1500, Source: m, Index: []int{0}}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got == nil || got == orig {
		t.Fatalf("expected a copy of the message to be posted")
	}
	if when, _ := got.Int64(FieldWhen); when != 1500 {
		t.Fatalf("expected when 1500, got %d", when)
	}
	if src, _ := got.Get(FieldSource); src != m {
		t.Fatalf("expected source to be the menu")
	}
	if idx, _ := got.Get(FieldIndex); len(idx.([]int)) != 1 || idx.([]int)[0] != 0 {
		t.Fatalf("unexpected index %v", idx)
	}
	if got.String("output") != "open" || got.What != 7 {
		t.Fatalf("expected original fields to be kept")
	}
	if _, ok := orig.Get(FieldWhen); ok {
		t.Fatalf("expected the item's own message to stay untouched")
	}
}

func TestInvokeErrors(t *testing.T) {
	it := NewItem("Orphan", nil)
	if err := it.Invoke(InvokeInfo{}); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	it.SetTarget(TargetFunc(func(*Message) error { return nil }))
	it.SetEnabled(false)
	if err := it.Invoke(InvokeInfo{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestInvokeWithoutMessageUsesDefault(t *testing.T) {
	var got *Message
	it := NewItem("Blank", nil)
	it.SetTarget(TargetFunc(func(msg *Message) error { got = msg; return nil }))
	if err := it.Invoke(InvokeInfo{When: 1}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got == nil || got.What != 0 {
		t.Fatalf("expected a default message")
	}
	if names := got.Names(); len(names) != 3 {
		t.Fatalf("expected three annotations, got %v", names)
	}
}
