// Package pdfio adapts the PDF decoding library into the page/glyph/table
// primitives the extractors consume. A document is snapshotted in full at
// load time so the underlying file handle never outlives Load.
package pdfio

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Glyph is one decoded character with its bounding box, top-left origin.
type Glyph struct {
	X0, X1      float64
	Top, Bottom float64
	Text        string
}

// Table is an ordered grid of ordered cells. Empty cells are "".
type Table [][]string

// Page is a snapshot of one decoded page.
type Page struct {
	Number int
	Width  float64
	Height float64
	Text   string
	Glyphs []Glyph
	Tables []Table
}

// Document is a fully-decoded PDF. It holds no open resources.
type Document struct {
	Path  string
	Pages []Page
}

// FullText joins every page's plain text with a newline.
func (d *Document) FullText() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

// Load decodes every page of the PDF at path into a Document snapshot.
// The file is closed before Load returns, on every path.
func Load(path string) (*Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &Document{Path: path}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		width, height := pageSize(page)

		glyphs := pageGlyphs(page, height)
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Fall back to glyph concatenation in reading order.
			text = glyphText(glyphs)
		}

		doc.Pages = append(doc.Pages, Page{
			Number: i,
			Width:  width,
			Height: height,
			Text:   text,
			Glyphs: glyphs,
			Tables: reconstructTables(glyphs),
		})
	}
	return doc, nil
}

// pageSize reads the MediaBox, defaulting to US Letter when absent.
func pageSize(page pdflib.Page) (w, h float64) {
	w, h = 612, 792
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Kind() != pdflib.Array || box.Len() != 4 {
		return w, h
	}
	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v := box.Index(i)
		switch v.Kind() {
		case pdflib.Integer:
			coords[i] = float64(v.Int64())
		case pdflib.Real:
			coords[i] = v.Float64()
		default:
			return w, h
		}
	}
	return coords[2] - coords[0], coords[3] - coords[1]
}

// pageGlyphs converts the library's bottom-origin text runs into
// top-origin glyphs.
func pageGlyphs(page pdflib.Page, pageHeight float64) []Glyph {
	content := page.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		top := pageHeight - t.Y - t.FontSize
		glyphs = append(glyphs, Glyph{
			X0:     t.X,
			X1:     t.X + t.W,
			Top:    top,
			Bottom: top + t.FontSize,
			Text:   t.S,
		})
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Top != glyphs[j].Top {
			return glyphs[i].Top < glyphs[j].Top
		}
		return glyphs[i].X0 < glyphs[j].X0
	})
	return glyphs
}

func glyphText(glyphs []Glyph) string {
	var b strings.Builder
	var prev *Glyph
	for i := range glyphs {
		g := glyphs[i]
		if prev != nil {
			if g.Top-prev.Top > rowTolerance {
				b.WriteString("\n")
			} else if g.X0-prev.X1 > wordGap {
				b.WriteString(" ")
			}
		}
		b.WriteString(g.Text)
		prev = &glyphs[i]
	}
	return b.String()
}
