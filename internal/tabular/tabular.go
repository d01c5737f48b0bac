// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tabular renders borderless, column-aligned text tables.
//
// Column widths are measured in terminal cells, so wide runes and tabs line
// up the way they will in an editor.
package tabular

import (
	"io"
	"strings"

	"github.com/bufbuild/emmydoc/internal/ext/unicodex"
)

// Table is a list of rows of text cells.
//
// A cell may contain newlines, in which case its row spans several output
// lines. Rows may have different numbers of cells; missing cells are empty.
type Table struct {
	// The number of spaces before the first column.
	Indent int
	// The number of spaces between columns.
	Gap int

	rows [][]string
}

// Row appends a row.
func (t *Table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table. Every output line ends in a newline and carries
// no trailing whitespace; a line whose cells are all empty is rendered empty.
func (t *Table) String() string {
	var out strings.Builder
	_, _ = t.WriteTo(&out)
	return out.String()
}

// WriteTo implements [io.WriterTo].
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	widths := t.widths()
	indent := strings.Repeat(" ", t.Indent)
	gap := strings.Repeat(" ", t.Gap)

	var n int64
	var line strings.Builder
	for _, row := range t.rows {
		cells := make([][]string, len(row))
		height := 1
		for i, cell := range row {
			cells[i] = strings.Split(cell, "\n")
			height = max(height, len(cells[i]))
		}

		for j := range height {
			line.Reset()
			line.WriteString(indent)
			for i, lines := range cells {
				if i > 0 {
					line.WriteString(gap)
				}
				var text string
				if j < len(lines) {
					text = lines[j]
				}
				line.WriteString(unicodex.PadRight(text, widths[i]))
			}

			text := strings.TrimRight(line.String(), " ")
			m, err := io.WriteString(w, text+"\n")
			n += int64(m)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// widths returns the widest line of every column.
func (t *Table) widths() []int {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			for line := range strings.SplitSeq(cell, "\n") {
				widths[i] = max(widths[i], unicodex.StringWidth(line))
			}
		}
	}
	return widths
}
