package pdfio

import (
	"sort"
	"strings"
)

const (
	// rowTolerance groups glyphs onto one visual row.
	rowTolerance = 3.0
	// wordGap inserts a space between glyph runs on the same row.
	wordGap = 3.0
	// columnGap is the horizontal whitespace treated as a cell boundary.
	columnGap = 12.0
	// minTableRows is the smallest row run considered a table.
	minTableRows = 2
)

type tableRow struct {
	top  float64
	runs []cellRun
}

type cellRun struct {
	x0, x1 float64
	text   string
}

// reconstructTables rebuilds table grids from raw glyph positions: glyphs
// are bucketed into rows by vertical tolerance, each row is split into
// cell runs at horizontal gaps, and consecutive multi-run rows form one
// table whose column boundaries come from the union of run extents.
func reconstructTables(glyphs []Glyph) []Table {
	rows := bucketRows(glyphs)
	if len(rows) == 0 {
		return nil
	}

	var tables []Table
	var block []tableRow
	flush := func() {
		if len(block) >= minTableRows {
			if t := gridFromRows(block); len(t) > 0 {
				tables = append(tables, t)
			}
		}
		block = nil
	}

	singles := 0
	for _, row := range rows {
		if len(row.runs) >= 2 {
			block = append(block, row)
			singles = 0
			continue
		}
		// A lone single-run row inside a block is carried along: wrapped
		// cell text frequently lands on its own visual row. Two in a row
		// end the table.
		if len(block) > 0 {
			singles++
			if singles >= 2 {
				block = block[:len(block)-1]
				flush()
				singles = 0
				continue
			}
			block = append(block, row)
		}
	}
	flush()
	return tables
}

func bucketRows(glyphs []Glyph) []tableRow {
	var rows []tableRow
	for _, g := range glyphs {
		placed := false
		for i := range rows {
			if abs(rows[i].top-g.Top) <= rowTolerance {
				rows[i].runs = appendRun(rows[i].runs, g)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, tableRow{top: g.Top, runs: []cellRun{{x0: g.X0, x1: g.X1, text: g.Text}}})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].top < rows[j].top })
	for i := range rows {
		sort.SliceStable(rows[i].runs, func(a, b int) bool { return rows[i].runs[a].x0 < rows[i].runs[b].x0 })
	}
	return rows
}

// appendRun merges a glyph into the last run when the gap is below
// columnGap, otherwise starts a new cell run.
func appendRun(runs []cellRun, g Glyph) []cellRun {
	// Runs arrive roughly sorted; find the closest run to the left.
	best := -1
	for i := range runs {
		if g.X0 >= runs[i].x0 && g.X0-runs[i].x1 <= columnGap {
			if best == -1 || runs[i].x1 > runs[best].x1 {
				best = i
			}
		}
	}
	if best >= 0 {
		r := &runs[best]
		if g.X0-r.x1 > wordGap {
			r.text += " "
		}
		r.text += g.Text
		if g.X1 > r.x1 {
			r.x1 = g.X1
		}
		return runs
	}
	return append(runs, cellRun{x0: g.X0, x1: g.X1, text: g.Text})
}

// gridFromRows assigns each run to a column derived from the union of run
// start positions across the block.
func gridFromRows(rows []tableRow) Table {
	bounds := columnBounds(rows)
	if len(bounds) == 0 {
		return nil
	}
	grid := make(Table, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(bounds))
		for _, run := range row.runs {
			col := columnFor(bounds, run.x0)
			if cells[col] != "" {
				cells[col] += " "
			}
			cells[col] += strings.TrimSpace(run.text)
		}
		grid = append(grid, cells)
	}
	return grid
}

// columnBounds clusters run start positions into column left edges.
func columnBounds(rows []tableRow) []float64 {
	var starts []float64
	for _, row := range rows {
		for _, run := range row.runs {
			starts = append(starts, run.x0)
		}
	}
	sort.Float64s(starts)
	var bounds []float64
	for _, x := range starts {
		if len(bounds) == 0 || x-bounds[len(bounds)-1] > columnGap {
			bounds = append(bounds, x)
		}
	}
	return bounds
}

func columnFor(bounds []float64, x0 float64) int {
	col := 0
	for i, b := range bounds {
		if x0 >= b-columnGap/2 {
			col = i
		}
	}
	return col
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
