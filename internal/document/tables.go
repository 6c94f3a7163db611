package document

import (
	"sort"
	"strings"

	"github.com/a3tai/mcp-fer-extract/internal/extract"
)

const (
	// rowTolerance is the vertical distance within which glyphs share a row.
	rowTolerance = 5.0

	// minTableRows is the number of multi-cell rows that make a table.
	minTableRows = 2

	// rowGapRatio is the widest vertical gap, in font sizes, between two
	// rows of one table.
	rowGapRatio = 2.5

	defaultGlyphSize = 10.0

	// Horizontal gaps, in multiples of the font size.
	wordGapRatio = 0.15
	cellGapRatio = 1.5
)

// glyph is one positioned text run of a PDF page.
type glyph struct {
	x, y, w, size float64
	s             string
}

func (g glyph) fontSize() float64 {
	if g.size <= 0 {
		return defaultGlyphSize
	}
	return g.size
}

// cell is the text of one table cell and the x where it starts.
type cell struct {
	text string
	x    float64
}

// buildTables groups glyphs into rows by baseline and splits each row into
// cells at wide horizontal gaps. A table is a run holding at least
// minTableRows rows of two or more cells. Once a table is open, a row with
// fewer cells than its widest row is kept and each cell placed in the
// column whose start is nearest, so a wrapped remark line comes back as
// {"", "remark"}. A vertical gap wider than rowGapRatio font sizes ends
// the table.
func buildTables(glyphs []glyph) []extract.Table {
	rows := groupRows(glyphs)

	var tables []extract.Table
	var current extract.Table
	var columns []float64
	multi := 0
	lastY := 0.0
	flush := func() {
		if multi >= minTableRows {
			tables = append(tables, trimTrailingRows(current))
		}
		current, columns, multi = nil, nil, 0
	}

	for _, row := range rows {
		cells := splitCells(row)
		y := baseline(row)
		if len(current) > 0 && lastY-y > rowGapRatio*row[0].fontSize() {
			flush()
		}
		lastY = y

		switch {
		case len(cells) >= 2 && len(cells) >= len(columns):
			columns = columns[:0]
			for _, c := range cells {
				columns = append(columns, c.x)
			}
			multi++
			current = append(current, cellTexts(cells))
		case len(cells) >= 2:
			multi++
			current = append(current, placeCells(cells, columns))
		case len(cells) == 1 && len(current) > 0:
			current = append(current, placeCells(cells, columns))
		default:
			flush()
		}
	}
	flush()

	return tables
}

// placeCells spreads cells over the table columns by nearest start. Cells
// landing in the same column are joined with a space.
func placeCells(cells []cell, columns []float64) []string {
	out := make([]string, len(columns))
	for _, c := range cells {
		best := 0
		for i, x := range columns {
			if abs(c.x-x) < abs(c.x-columns[best]) {
				best = i
			}
		}
		out[best] = strings.TrimSpace(out[best] + " " + c.text)
	}
	return out
}

// trimTrailingRows drops rows at the end of a table that hold only a
// first-column cell; those are text below the table, not a wrapped cell.
func trimTrailingRows(table extract.Table) extract.Table {
	for len(table) > 0 {
		last := table[len(table)-1]
		if filledCells(last) > 1 || last[0] == "" {
			break
		}
		table = table[:len(table)-1]
	}
	return table
}

func filledCells(row []string) int {
	n := 0
	for _, c := range row {
		if c != "" {
			n++
		}
	}
	return n
}

func cellTexts(cells []cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.text
	}
	return out
}

func baseline(row []glyph) float64 {
	y := row[0].y
	for _, g := range row[1:] {
		if g.y > y {
			y = g.y
		}
	}
	return y
}

// groupRows sorts glyphs top to bottom and collects those within
// rowTolerance of a row's first baseline. Rows come back sorted by x.
func groupRows(glyphs []glyph) [][]glyph {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var rows [][]glyph
	currentRow := []glyph{sorted[0]}
	currentY := sorted[0].y

	for _, g := range sorted[1:] {
		if abs(g.y-currentY) <= rowTolerance {
			currentRow = append(currentRow, g)
			continue
		}
		rows = append(rows, currentRow)
		currentRow = []glyph{g}
		currentY = g.y
	}
	rows = append(rows, currentRow)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].x < row[j].x
		})
	}
	return rows
}

// splitCells joins the glyphs of one row into cells.
func splitCells(row []glyph) []cell {
	var cells []cell
	var b strings.Builder
	end, start := 0.0, 0.0
	emit := func() {
		if text := strings.TrimSpace(b.String()); text != "" {
			cells = append(cells, cell{text: text, x: start})
		}
		b.Reset()
	}

	for i, g := range row {
		if i == 0 {
			start = g.x
		} else {
			gap := g.x - end
			switch {
			case gap > cellGapRatio*g.fontSize():
				emit()
				start = g.x
			case gap > wordGapRatio*g.fontSize() && !strings.HasSuffix(b.String(), " "):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.s)
		if e := g.x + g.w; e > end || i == 0 {
			end = e
		}
	}
	emit()

	return cells
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
