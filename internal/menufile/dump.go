package menufile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/menukit/internal/format/table"
	"github.com/atomicstack/menukit/internal/menu"
)

var dumpColumns = []table.Column{
	{Title: "#", Align: table.AlignRight},
	{Title: "label"},
	{Title: "frame"},
	{Title: "shortcut"},
	{Title: "flags"},
}

// Dump lays out m and every submenu and lists their item frames.
func Dump(m *menu.Menu) []string {
	var rows [][]string
	dumpRows(m, "", &rows)
	return table.Format(dumpColumns, rows)
}

func dumpRows(m *menu.Menu, prefix string, rows *[][]string) {
	m.RelayoutIfNeeded()
	for i, it := range m.Items() {
		index := prefix + strconv.Itoa(i)
		label := it.Label()
		if it.IsSeparator() {
			label = "---"
		}
		f := it.Frame()
		frame := fmt.Sprintf("%d,%d %dx%d", f.Min.X, f.Min.Y, f.Dx(), f.Dy())
		var shortcut string
		if key, mods := it.Shortcut(); key != 0 {
			shortcut = menu.ShortcutLabel(key, mods, false)
		}
		*rows = append(*rows, []string{index, label, frame, shortcut, flags(it)})
		if sub := it.Submenu(); sub != nil {
			dumpRows(sub, index+".", rows)
		}
	}
}

func flags(it *menu.Item) string {
	var out []string
	if !it.Enabled() && !it.IsSeparator() {
		out = append(out, "disabled")
	}
	if it.Marked() {
		out = append(out, "marked")
	}
	if it.Submenu() != nil {
		out = append(out, "submenu")
	}
	return strings.Join(out, ",")
}
