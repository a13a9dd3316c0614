package shell

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesh/internal/session"
)

func renderTable(t *table) string {
	buf := &bytes.Buffer{}
	t.render(session.NewPrinter(buf))
	return buf.String()
}

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable("Name", "Phase")
	tbl.addRow(plainCell("a-rather-long-name"), plainCell("Running"))
	tbl.addRow(plainCell("b"), plainCell("Pending"))

	lines := strings.Split(strings.TrimRight(renderTable(tbl), "\n"), "\n")
	require.Len(t, lines, 3)

	col := strings.Index(lines[1], "Running")
	require.Greater(t, col, 0)
	assert.Equal(t, col, strings.Index(lines[2], "Pending"))
	assert.Equal(t, col, strings.Index(lines[0], "Phase"))
}

func TestTableTruncatesLongCells(t *testing.T) {
	tbl := newTable("Name")
	tbl.addRow(plainCell(strings.Repeat("x", 100)))

	out := renderTable(tbl)
	assert.Contains(t, out, strings.Repeat("x", 77)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 78))
}

func TestIndexedTableRightAlignsIndexes(t *testing.T) {
	tbl := indexedTable("Name")
	for i := 0; i <= 10; i++ {
		tbl.addIndexedRow(i, plainCell(fmt.Sprintf("pod-%d", i)))
	}

	out := renderTable(tbl)
	assert.Contains(t, out, "####  Name")
	assert.Contains(t, out, "   0  pod-0")
	assert.Contains(t, out, "  10  pod-10")
}

func TestTableTrimsTrailingPadding(t *testing.T) {
	tbl := newTable("Name", "Phase")
	tbl.addRow(plainCell("pod"), plainCell("Up"))

	for _, line := range strings.Split(renderTable(tbl), "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestConfirmReader(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  YES  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tc := range cases {
		out := &bytes.Buffer{}
		c := newConfirmReader(strings.NewReader(tc.input), out)
		got := c.ask("Proceed [y/N]? ")
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Equal(t, "Proceed [y/N]? ", out.String())
	}
}
