package menu

import (
	"image"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// HitTestItems returns the first item whose frame, grown by slop on every
// side, contains p. Separators never match. Points outside the menu bounds
// return nil.
func (m *Menu) HitTestItems(p image.Point, slop image.Point) *Item {
	m.RelayoutIfNeeded()
	bounds := image.Rectangle{Min: m.bounds.Min.Sub(slop), Max: m.bounds.Max.Add(slop)}
	if !p.In(bounds) {
		return nil
	}
	for _, it := range m.items {
		if it.separator {
			continue
		}
		frame := it.frame
		frame.Min = frame.Min.Sub(slop)
		frame.Max = frame.Max.Add(slop)
		if p.In(frame) {
			return it
		}
	}
	return nil
}

// NextItem returns the next selectable item after current in list order,
// wrapping at either end. A nil current starts from the first (forward) or
// last (backward) item. It returns current when current is the only
// selectable item and nil when nothing is selectable.
func (m *Menu) NextItem(current *Item, forward bool) *Item {
	n := len(m.items)
	if n == 0 {
		return nil
	}
	index := m.IndexOf(current)
	step := 1
	if !forward {
		step = -1
	}
	var start int
	switch {
	case index < 0 && forward:
		start = 0
	case index < 0:
		start = n - 1
	default:
		start = (index + step + n) % n
	}
	for i := 0; i < n; i++ {
		it := m.items[((start+i*step)%n+n)%n]
		if it.selectable() {
			return it
		}
	}
	return nil
}

// IsItemVisible reports whether any part of item shows inside viewport,
// given in menu-local cells.
func (m *Menu) IsItemVisible(item *Item, viewport image.Rectangle) bool {
	if item == nil || item.menu != m {
		return false
	}
	m.RelayoutIfNeeded()
	return item.frame.Overlaps(viewport)
}

// Select highlights item and clears any other highlight. A nil item clears
// the highlight. extend is accepted for multi-selection and has no effect:
// a menu highlights at most one item. Select reports whether the highlight
// changed.
func (m *Menu) Select(item *Item, extend bool) bool {
	_ = extend
	if item != nil && item.menu != m {
		return false
	}
	if item == m.selected {
		return false
	}
	if m.selected != nil {
		m.selected.selected = false
	}
	m.selected = item
	if item != nil {
		item.selected = true
	}
	return true
}

// BestMatch returns the selectable item that best matches query: an exact
// label first, then a prefix, a substring and finally the closest fuzzy
// match. It returns nil for an empty query or when nothing matches.
func (m *Menu) BestMatch(query string) *Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	candidates := make([]*Item, 0, len(m.items))
	for _, it := range m.items {
		if it.selectable() && it.label != "" {
			candidates = append(candidates, it)
		}
	}
	lower := strings.ToLower(trimmed)
	for _, it := range candidates {
		if strings.EqualFold(it.label, trimmed) {
			return it
		}
	}
	for _, it := range candidates {
		if strings.HasPrefix(strings.ToLower(it.label), lower) {
			return it
		}
	}
	for _, it := range candidates {
		if strings.Contains(strings.ToLower(it.label), lower) {
			return it
		}
	}
	labels := make([]string, len(candidates))
	for i, it := range candidates {
		labels[i] = it.label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return nil
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return candidates[best.OriginalIndex]
}
