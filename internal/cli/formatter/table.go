package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = "  "

// Table is a column-aligned listing. Widths are measured on visible text so
// styled cells line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAlign marks numeric columns by index.
	RightAlign map[int]bool
}

func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// AlignRight right-aligns the given columns.
func (t *Table) AlignRight(cols ...int) *Table {
	if t.RightAlign == nil {
		t.RightAlign = make(map[int]bool, len(cols))
	}
	for _, c := range cols {
		t.RightAlign[c] = true
	}
	return t
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	styled := make([]string, len(t.Headers))
	rules := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		styled[i] = StyleHeader.Render(h)
		rules[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	t.writeLine(&b, widths, styled, t.Headers)
	t.writeLine(&b, widths, rules, nil)
	for _, row := range t.Rows {
		t.writeLine(&b, widths, row, nil)
	}
	return b.String()
}

// writeLine pads each cell to its column width. plain, when non-nil, holds
// unstyled text used for measuring.
func (t *Table) writeLine(b *strings.Builder, widths []int, cells, plain []string) {
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		visible := lipgloss.Width(cell)
		if plain != nil {
			visible = lipgloss.Width(plain[i])
		}
		pad := strings.Repeat(" ", max(w-visible, 0))
		switch {
		case t.RightAlign[i]:
			b.WriteString(pad + cell)
		case i == last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + pad)
		}
		if i < last {
			b.WriteString(colGap)
		}
	}
	b.WriteString("\n")
}
