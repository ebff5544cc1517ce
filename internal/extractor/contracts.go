// Package extractor holds the per-vendor field and line-item extraction
// strategies and the dispatcher that selects among them.
package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// FieldMap is the raw vendor extraction result prior to schema
// normalization: canonical field name -> extracted string or number.
type FieldMap map[string]any

// LineItem is one invoice line with its pricing and tax breakdown.
type LineItem struct {
	SlNo        int
	Description string
	UnitPrice   float64
	Discount    float64
	Qty         float64
	NetAmount   float64
	TaxRate     string
	TaxType     string
	TaxAmount   float64
	TotalAmount float64
}

// ItemTable is an ordered line-item table. Most vendors emit the canonical
// 10-column form; Amazon returns the source table verbatim with its own
// normalized header.
type ItemTable struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t ItemTable) Empty() bool {
	return len(t.Rows) == 0
}

// Extractor is the closed per-brand variant: a header extraction function
// and a line-item extraction function. Totals that a vendor computes while
// walking its item table are merged into the field map inside Header.
type Extractor struct {
	Brand  constants.Brand
	Header func(doc *pdfio.Document) FieldMap
	Items  func(doc *pdfio.Document) ItemTable
}

// Extract runs the vendor's header then line-item extraction.
func (e *Extractor) Extract(doc *pdfio.Document) (FieldMap, ItemTable) {
	return e.Header(doc), e.Items(doc)
}

// ForBrand returns the extractor for a detected brand, or false when the
// brand is not one of the known five.
func ForBrand(b constants.Brand) (*Extractor, bool) {
	switch b {
	case constants.BrandAmazon:
		return &Extractor{Brand: b, Header: amazonHeader, Items: amazonItems}, true
	case constants.BrandFlipkart:
		return &Extractor{Brand: b, Header: flipkartHeader, Items: flipkartItems}, true
	case constants.BrandZomato:
		return &Extractor{Brand: b, Header: zomatoHeader, Items: zomatoItems}, true
	case constants.BrandBlinkit:
		return &Extractor{Brand: b, Header: blinkitHeader, Items: blinkitItems}, true
	case constants.BrandInstamart:
		return &Extractor{Brand: b, Header: instamartHeader, Items: instamartItems}, true
	default:
		return nil, false
	}
}

// --- shared helpers ---

var wsRE = regexp.MustCompile(`\s+`)

// clean collapses runs of whitespace into single spaces and trims.
func clean(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

// grab returns the first capture group of pattern in text, trimmed, or ""
// when the pattern does not match. A single missing field never aborts
// extraction of the others.
func grab(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// safeFloat parses a currency-ish token, tolerating thousands separators
// and percent signs. Parse failure yields 0.0.
func safeFloat(val string) float64 {
	f, ok := parseFloat(val)
	if !ok {
		return 0.0
	}
	return f
}

func parseFloat(val string) (float64, bool) {
	s := strings.TrimSpace(strings.NewReplacer(",", "", "%", "").Replace(val))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatAmount renders a float without trailing zeros, for table cells.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cellAt indexes a table row defensively: out-of-range or negative column
// reads come back empty instead of panicking on short rows.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// dropEmptyRows removes rows whose cells are all blank.
func dropEmptyRows(t pdfio.Table) pdfio.Table {
	out := make(pdfio.Table, 0, len(t))
	for _, row := range t {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// canonicalTable renders line items into the fixed 10-column table.
func canonicalTable(items []LineItem) ItemTable {
	t := ItemTable{Columns: constants.LineItemColumns}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(it.SlNo),
			it.Description,
			formatAmount(it.UnitPrice),
			formatAmount(it.Discount),
			formatAmount(it.Qty),
			formatAmount(it.NetAmount),
			it.TaxRate,
			it.TaxType,
			formatAmount(it.TaxAmount),
			formatAmount(it.TotalAmount),
		})
	}
	return t
}
