package converter

// table.go — table grid construction and rendering.
//
// The logical grid expands each cell by its gridSpan into adjacent slots and
// marks vertical-merge continuations, so every row sums to the declared
// column count. Markdown has no span syntax: continuation slots render as
// empty cells, which is the documented limitation. Cell content stays as
// fragments until render time so note numbering follows document order.

import (
	"fmt"
	"strings"
)

const (
	minColWidth      = 3  // minimum separator width for a valid Markdown table
	maxPlainColWidth = 40 // padding cap for the plain-text grid
)

type tableCell struct {
	fragments []inlineFragment
	align     string // "", "left", "center", "right"
	merged    bool   // occupies a slot for a span or vertical continuation
}

type tableModel struct {
	grid   [][]tableCell
	width  int
	aligns []string
}

func (c *conversion) buildTableModel(t *tableXML) *tableModel {
	width := len(t.Grid.Cols)

	var grid [][]tableCell
	var prevSpans []int // span at each slot of the previous row, 0 on filler slots
	for _, row := range t.Rows {
		var cells []tableCell
		var spans []int
		for _, tc := range row.Cells {
			col := len(cells)
			span := 1
			vmCont := false
			align := ""
			if tc.Props != nil {
				if tc.Props.GridSpan != nil && tc.Props.GridSpan.Val > 1 {
					span = tc.Props.GridSpan.Val
				}
				vmCont = tc.Props.VMerge.continuation()
				align = alignment(tc.Props.Jc)
			}
			if align == "" {
				align = cellParagraphAlignment(tc.Paragraphs)
			}
			// A continuation without its own gridSpan occupies the same
			// columns as the cell it continues.
			if vmCont && span == 1 && col < len(prevSpans) && prevSpans[col] > 1 {
				span = prevSpans[col]
			}

			cell := tableCell{align: align, merged: vmCont}
			if !vmCont {
				cell.fragments = cellFragments(c, tc.Paragraphs)
			}
			cells = append(cells, cell)
			spans = append(spans, span)
			for i := 1; i < span; i++ {
				cells = append(cells, tableCell{align: align, merged: true})
				spans = append(spans, 0)
			}
		}
		grid = append(grid, cells)
		prevSpans = spans
		if len(cells) > width {
			width = len(cells)
		}
	}
	if width == 0 || len(grid) == 0 {
		return &tableModel{}
	}

	// Pad short rows and copy alignment down onto vertical continuations.
	for r := range grid {
		for len(grid[r]) < width {
			grid[r] = append(grid[r], tableCell{merged: true})
		}
		if r == 0 {
			continue
		}
		for col := range grid[r] {
			if grid[r][col].merged && grid[r][col].align == "" {
				grid[r][col].align = grid[r-1][col].align
			}
		}
	}

	aligns := make([]string, width)
	for col := 0; col < width; col++ {
		aligns[col] = grid[0][col].align
	}
	for _, row := range grid[1:] {
		for col, cell := range row {
			if aligns[col] == "" || aligns[col] == "left" {
				if cell.align == "center" || cell.align == "right" {
					aligns[col] = cell.align
				}
			}
		}
	}

	return &tableModel{grid: grid, width: width, aligns: aligns}
}

// cellFragments joins a cell's paragraphs with soft breaks; the breaks turn
// into spaces when the cell is flattened to a single line.
func cellFragments(c *conversion, paragraphs []paragraphXML) []inlineFragment {
	var frags []inlineFragment
	for i := range paragraphs {
		pf := c.buildFragments(&paragraphs[i])
		if len(pf) == 0 {
			continue
		}
		if len(frags) > 0 {
			frags = append(frags, inlineFragment{kind: fragBreak})
		}
		frags = append(frags, pf...)
	}
	return frags
}

func alignment(jc *valAttr) string {
	if jc == nil {
		return ""
	}
	switch jc.Val {
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "left", "start":
		return "left"
	}
	return ""
}

func cellParagraphAlignment(paragraphs []paragraphXML) string {
	for i := range paragraphs {
		if p := paragraphs[i].props; p != nil {
			return alignment(p.Justification)
		}
	}
	return ""
}

func (c *conversion) renderTable(m *tableModel) string {
	if m == nil || m.width == 0 || len(m.grid) == 0 {
		return ""
	}

	rows := make([][]string, len(m.grid))
	for r, row := range m.grid {
		rows[r] = make([]string, m.width)
		for col, cell := range row {
			text := c.renderFragments(cell.fragments)
			rows[r][col] = strings.ReplaceAll(text, "\n", " ")
		}
	}

	if c.format == FormatText {
		return renderTextTable(rows)
	}
	return renderMarkdownTable(rows, m.aligns)
}

// renderMarkdownTable emits a GitHub-Flavored Markdown table: header row,
// alignment separator row, then data rows. Each column is padded to its
// widest cell. Cell content arrives already escaped. When any column carries
// a non-default alignment, an annotation trailer records it.
func renderMarkdownTable(rows [][]string, aligns []string) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}
	cols := len(rows[0])

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColWidth
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	pad := func(s string, w int) string {
		if len(s) >= w {
			return s
		}
		return s + strings.Repeat(" ", w-len(s))
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")
		for i, cell := range row {
			sb.WriteString(" " + pad(cell, widths[i]) + " |")
		}
		sb.WriteByte('\n')
	}

	writeRow(rows[0])

	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		sb.WriteString(" " + separatorCell(widths[i], aligns[i]) + " |")
	}
	sb.WriteByte('\n')

	for _, row := range rows[1:] {
		writeRow(row)
	}

	out := strings.TrimRight(sb.String(), "\n")
	if note := alignmentNote(aligns); note != "" {
		out += "\n" + note
	}
	return out
}

func separatorCell(width int, align string) string {
	switch align {
	case "center":
		return ":" + strings.Repeat("-", max(width-2, minColWidth)) + ":"
	case "right":
		return strings.Repeat("-", max(width-1, minColWidth)) + ":"
	}
	return strings.Repeat("-", width)
}

func alignmentNote(aligns []string) string {
	var parts []string
	for i, a := range aligns {
		if a == "center" || a == "right" {
			parts = append(parts, fmt.Sprintf("col%d:%s", i+1, a))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "<!-- Table alignment: " + strings.Join(parts, ", ") + " -->"
}

// renderTextTable emits a padded plain-text grid. Column widths are capped so
// a pathological cell cannot balloon the whole table.
func renderTextTable(rows [][]string) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}
	cols := len(rows[0])

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			w := min(len(cell), maxPlainColWidth)
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, cols)
		for i, cell := range row {
			if len(cell) < widths[i] {
				cell += strings.Repeat(" ", widths[i]-len(cell))
			}
			cells[i] = cell
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " | "), " "))
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
