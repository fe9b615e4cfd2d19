package menu

import "testing"

func TestCalcTriggers(t *testing.T) {
	m := newTestMenu("Open", "Options", "1984", "  --  ")
	m.ItemAt(1).SetTrigger('O')
	m.CalcTriggers()

	if got := m.ItemAt(1).Trigger(); got != 'O' {
		t.Fatalf("expected user trigger O, got %q", got)
	}
	if got := m.ItemAt(0).Trigger(); got != 'p' {
		t.Fatalf("expected Open to skip the reserved o and take p, got %q", got)
	}
	if idx := m.ItemAt(0).TriggerIndex(); idx != 1 {
		t.Fatalf("expected trigger index 1, got %d", idx)
	}
	if got := m.ItemAt(2).Trigger(); got != '1' {
		t.Fatalf("expected digit trigger, got %q", got)
	}
	if got := m.ItemAt(3).Trigger(); got != '-' {
		t.Fatalf("expected fallback to the first non-space rune, got %q", got)
	}
	if idx := m.ItemAt(3).TriggerIndex(); idx != 2 {
		t.Fatalf("expected fallback index 2, got %d", idx)
	}
}

func TestItemForTriggerScansFromTheEnd(t *testing.T) {
	m := newTestMenu("Alpha", "Beta")
	m.ItemAt(0).SetTrigger('x')
	m.ItemAt(1).SetTrigger('x')
	if it := m.ItemForTrigger('X'); it == nil || it.Label() != "Beta" {
		t.Fatalf("expected the last matching item, got %v", it)
	}
	m.ItemAt(1).SetEnabled(false)
	if it := m.ItemForTrigger('x'); it == nil || it.Label() != "Alpha" {
		t.Fatalf("expected disabled items to be skipped, got %v", it)
	}
	m.SetTriggersEnabled(false)
	if m.ItemForTrigger('x') != nil {
		t.Fatalf("expected no trigger lookups when disabled")
	}
}

func TestShortcutLookup(t *testing.T) {
	root := newTestMenu("Save")
	root.ItemAt(0).SetShortcut('s', 0)
	sub := New("Edit", LayoutColumn)
	sub.AddItem(NewItem("Undo", nil))
	sub.ItemAt(0).SetShortcut('z', ShiftKey)
	root.AddSubmenu(sub)

	if it := root.ItemForShortcut('S', 0); it == nil || it.Label() != "Save" {
		t.Fatalf("expected Save, got %v", it)
	}
	if it := root.ItemForShortcut('z', ShiftKey); it == nil || it.Label() != "Undo" {
		t.Fatalf("expected Undo from the submenu, got %v", it)
	}
	if root.ItemForShortcut('z', 0) != nil {
		t.Fatalf("expected modifier mismatch to miss")
	}
	if got := ShortcutLabel('z', ShiftKey|CommandKey, true); got != "shift+alt+Z" {
		t.Fatalf("unexpected label %q", got)
	}
}
