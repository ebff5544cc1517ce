// Package cluster groups page glyphs into coherent text blocks using
// density-based spatial clustering, then flattens the blocks into a single
// search string for regex-based field extraction. Invoice labels and their
// values are often printed at slightly different baselines; naive
// top-to-bottom extraction splits them across lines, clustering keeps them
// together.
package cluster

import (
	"math"
	"sort"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

const (
	// DefaultEps is the DBSCAN neighborhood radius in normalized units.
	DefaultEps = 0.1
	// WideEps pairs with the x3 horizontal weight on dense layouts.
	WideEps = 0.12
	// lineGap is the vertical distance treated as a line break inside a block.
	lineGap = 3.0
	// minBlockLen discards short blocks (headers, footers, decorative marks).
	minBlockLen = 30
	// separator joins surviving blocks into the flattened search string.
	separator = " | "
)

// PageOptions select the clustering parameters for one page.
type PageOptions struct {
	Eps     float64
	XWeight float64
}

// Uniform applies the default radius with unweighted axes to every page.
func Uniform(pdfio.Page) PageOptions {
	return PageOptions{Eps: DefaultEps, XWeight: 1}
}

// DenseAware widens the horizontal weight when the page's widest table has
// fewer than 6 populated columns: denser multi-column layouts need wider
// horizontal separation to avoid over-merging.
func DenseAware(p pdfio.Page) PageOptions {
	maxCols := 0
	if largest := largestTable(p.Tables); len(largest) > 0 {
		maxCols = widestRow(largest)
	}
	if maxCols >= 6 {
		return PageOptions{Eps: DefaultEps, XWeight: 1}
	}
	return PageOptions{Eps: WideEps, XWeight: 3}
}

func largestTable(tables []pdfio.Table) pdfio.Table {
	var largest pdfio.Table
	for _, t := range tables {
		if len(t) > len(largest) {
			largest = t
		}
	}
	return largest
}

func widestRow(t pdfio.Table) int {
	widest := 0
	for _, row := range t {
		n := 0
		for _, c := range row {
			if c != "" {
				n++
			}
		}
		if n > widest {
			widest = n
		}
	}
	return widest
}

// Flatten clusters every page's glyphs and joins the surviving blocks into
// one flattened search string for the whole document.
func Flatten(doc *pdfio.Document, pick func(pdfio.Page) PageOptions) string {
	var blocks []string
	for _, page := range doc.Pages {
		if len(page.Glyphs) == 0 {
			continue
		}
		opts := pick(page)
		blocks = append(blocks, pageBlocks(page.Glyphs, opts)...)
	}
	return strings.Join(blocks, separator)
}

func pageBlocks(glyphs []pdfio.Glyph, opts PageOptions) []string {
	points := make([]point, len(glyphs))
	for i, g := range glyphs {
		points[i] = point{
			x: (g.X0 + g.X1) / 2,
			y: (g.Top + g.Bottom) / 2,
		}
	}
	normalize(points, opts.XWeight)

	labels := dbscan(points, opts.Eps)

	groups := map[int][]pdfio.Glyph{}
	for i, lbl := range labels {
		if lbl < 0 {
			continue
		}
		groups[lbl] = append(groups[lbl], glyphs[i])
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var blocks []string
	for _, k := range keys {
		if text := renderBlock(groups[k]); len(text) > minBlockLen {
			blocks = append(blocks, text)
		}
	}
	return blocks
}

// renderBlock sorts a cluster into reading order and concatenates glyph
// text, inserting a space at each detected line break.
func renderBlock(group []pdfio.Glyph) string {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].Top != group[j].Top {
			return group[i].Top < group[j].Top
		}
		return group[i].X0 < group[j].X0
	})
	var b strings.Builder
	prevTop := math.NaN()
	for _, g := range group {
		if !math.IsNaN(prevTop) && math.Abs(g.Top-prevTop) > lineGap {
			b.WriteString(" ")
		}
		b.WriteString(g.Text)
		prevTop = g.Top
	}
	return strings.TrimSpace(b.String())
}
