package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column names a table column and how its cells are aligned.
type Column struct {
	Title string
	Align Alignment
}

const gutter = "  "

// Format lays rows out under a title line and a rule, padding each column
// to its widest cell. Rows shorter than the column list are padded with
// empty cells.
func Format(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	for c, col := range columns {
		widths[c] = lipgloss.Width(col.Title)
	}
	for _, row := range rows {
		for c := 0; c < len(columns) && c < len(row); c++ {
			if w := lipgloss.Width(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, 0, len(rows)+2)
	titles := make([]string, len(columns))
	rules := make([]string, len(columns))
	for c, col := range columns {
		titles[c] = col.Title
		rules[c] = strings.Repeat("-", widths[c])
	}
	out = append(out, line(columns, widths, titles), line(columns, widths, rules))
	for _, row := range rows {
		out = append(out, line(columns, widths, row))
	}
	return out
}

func line(columns []Column, widths []int, cells []string) string {
	var b strings.Builder
	for c, col := range columns {
		if c > 0 {
			b.WriteString(gutter)
		}
		var cell string
		if c < len(cells) {
			cell = cells[c]
		}
		pad := widths[c] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if col.Align == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			continue
		}
		b.WriteString(cell)
		if c < len(columns)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
