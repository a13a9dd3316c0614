package shell

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kubesh/internal/session"
)

// maxCellWidth truncates runaway cells (long names, label dumps) so one row
// cannot wreck the layout.
const maxCellWidth = 80

// cell is one table cell: plain text plus an optional style applied at
// render time, after width math is done on the plain text.
type cell struct {
	text  string
	style *lipgloss.Style
}

func plainCell(text string) cell {
	return cell{text: text}
}

func styledCell(text string, style lipgloss.Style) cell {
	return cell{text: text, style: &style}
}

// table renders rows in aligned columns. Listing tables carry a leading
// "####" index column, right-aligned like the rest of the numbers users
// type back in.
type table struct {
	headers []string
	rows    [][]cell
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func indexedTable(headers ...string) *table {
	return newTable(append([]string{"####"}, headers...)...)
}

func (t *table) addRow(cells ...cell) {
	t.rows = append(t.rows, cells)
}

// addIndexedRow prepends the display index to a row.
func (t *table) addIndexedRow(index int, cells ...cell) {
	row := make([]cell, 0, len(cells)+1)
	row = append(row, styledCell(strconv.Itoa(index), indexStyle))
	t.addRow(append(row, cells...)...)
}

func (t *table) render(p *session.Printer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(c.text); w > widths[i] {
				if w > maxCellWidth {
					w = maxCellWidth
				}
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range t.headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(pad(h, widths[i], false)))
	}
	p.Line("%s", b.String())

	for _, row := range t.rows {
		b.Reset()
		for i, c := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			text := c.text
			if runewidth.StringWidth(text) > maxCellWidth {
				text = runewidth.Truncate(text, maxCellWidth, "...")
			}
			// The index column is right-aligned, everything else left.
			padded := pad(text, widths[i], i == 0 && t.headers[0] == "####")
			if c.style != nil {
				padded = c.style.Render(padded)
			}
			b.WriteString(padded)
		}
		p.Line("%s", strings.TrimRight(b.String(), " "))
	}
}

func pad(s string, width int, right bool) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
