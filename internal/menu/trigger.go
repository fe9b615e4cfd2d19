package menu

import "unicode"

// CalcTriggers assigns automatic triggers. User triggers are reserved first;
// each remaining item takes the first unused ASCII letter or digit of its
// label, falling back to the first unused non-space rune. Triggers compare
// case-insensitively.
func (m *Menu) CalcTriggers() {
	used := make(map[rune]struct{}, len(m.items))
	for _, it := range m.items {
		it.trigger = 0
		it.triggerIndex = -1
		if it.userTrigger == 0 {
			continue
		}
		r := unicode.ToLower(it.userTrigger)
		used[r] = struct{}{}
		it.triggerIndex = runeIndexFold(it.label, r)
	}
	for _, it := range m.items {
		if it.userTrigger != 0 || it.separator {
			continue
		}
		if r, idx, ok := chooseTrigger(it.label, used); ok {
			it.trigger = r
			it.triggerIndex = idx
			used[r] = struct{}{}
		}
	}
	m.triggersValid = true
}

func chooseTrigger(label string, used map[rune]struct{}) (rune, int, bool) {
	runes := []rune(label)
	for i, c := range runes {
		if c >= 128 || !(unicode.IsLetter(c) || unicode.IsDigit(c)) {
			continue
		}
		if _, taken := used[unicode.ToLower(c)]; taken {
			continue
		}
		return unicode.ToLower(c), i, true
	}
	for i, c := range runes {
		if unicode.IsSpace(c) {
			continue
		}
		if _, taken := used[unicode.ToLower(c)]; taken {
			continue
		}
		return unicode.ToLower(c), i, true
	}
	return 0, -1, false
}

func runeIndexFold(label string, r rune) int {
	for i, c := range []rune(label) {
		if unicode.ToLower(c) == r {
			return i
		}
	}
	return -1
}

// ItemForTrigger returns the enabled item whose trigger matches r, scanning
// from the last item to the first. It returns nil when triggers are off.
func (m *Menu) ItemForTrigger(r rune) *Item {
	if !m.triggersEnabled || r == 0 {
		return nil
	}
	if !m.triggersValid {
		m.CalcTriggers()
	}
	r = unicode.ToLower(r)
	for i := len(m.items) - 1; i >= 0; i-- {
		it := m.items[i]
		if !it.selectable() {
			continue
		}
		if t := it.Trigger(); t != 0 && unicode.ToLower(t) == r {
			return it
		}
	}
	return nil
}

// EnsureTriggers recomputes triggers when items changed since the last run.
func (m *Menu) EnsureTriggers() {
	if !m.triggersValid {
		m.CalcTriggers()
	}
}
