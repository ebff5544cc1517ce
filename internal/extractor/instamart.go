package extractor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// Instamart prints labels and values in two side-by-side columns, so the
// first page's glyphs are split at the horizontal midpoint and each half is
// re-flattened into layout-aware lines before field matching.

const (
	insYTolerance = 3.0
	insXGap       = 3.0
)

var (
	insLettersRE = regexp.MustCompile(`[^a-zA-Z]`)
	// Labels the renderer glues together with no space between words.
	insGluedLabels = strings.NewReplacer(
		"InvoiceTo", "Invoice To",
		"CustomerAddress", "Customer Address",
		"OrderID", "Order ID",
		"InvoiceNo", "Invoice No",
		"DateofInvoice", "Date of Invoice",
		"SellerName", "Seller Name",
		"SellerGSTIN", "Seller GSTIN",
		"PlaceofSupply", "Place of Supply",
	)
)

// glyphsToLines buckets glyphs into visual lines by vertical tolerance and
// renders each line left to right, inserting a space wherever the
// horizontal gap between adjacent glyphs exceeds the x-gap tolerance.
func glyphsToLines(glyphs []pdfio.Glyph) []string {
	type bucket struct {
		y      float64
		glyphs []pdfio.Glyph
	}
	sorted := make([]pdfio.Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var buckets []bucket
	for _, g := range sorted {
		placed := false
		for i := range buckets {
			if abs(buckets[i].y-g.Top) <= insYTolerance {
				buckets[i].glyphs = append(buckets[i].glyphs, g)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{y: g.Top, glyphs: []pdfio.Glyph{g}})
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].y < buckets[j].y })

	var lines []string
	for _, b := range buckets {
		sort.SliceStable(b.glyphs, func(i, j int) bool { return b.glyphs[i].X0 < b.glyphs[j].X0 })
		var line strings.Builder
		prevX1 := -1.0
		for _, g := range b.glyphs {
			if prevX1 >= 0 && g.X0-prevX1 > insXGap {
				line.WriteString(" ")
			}
			line.WriteString(g.Text)
			prevX1 = g.X1
		}
		if text := clean(line.String()); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func normalizeLabels(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = insGluedLabels.Replace(l)
	}
	return out
}

// amountInWords recovers the "amount in words" phrase: every line is
// stripped to letters and lowercased, the joined text is cut after the
// "amountinwords" marker and truncated at "only", then currency unit
// spacing is re-inserted.
func amountInWords(leftLines, rightLines []string) string {
	normalized := make([]string, 0, len(leftLines)+len(rightLines))
	for _, l := range append(append([]string{}, leftLines...), rightLines...) {
		normalized = append(normalized, strings.ToLower(insLettersRE.ReplaceAllString(l, "")))
	}
	joined := strings.Join(normalized, " ")

	if !strings.Contains(joined, "amountinwords") {
		return ""
	}
	text := joined[strings.Index(joined, "amountinwords")+len("amountinwords"):]
	if idx := strings.Index(text, "only"); idx >= 0 {
		text = text[:idx] + " only"
	}
	text = strings.ReplaceAll(text, "rupees", " rupees ")
	text = strings.ReplaceAll(text, "paise", " paise ")
	text = clean(text)
	return capitalize(text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func instamartHeader(doc *pdfio.Document) FieldMap {
	if len(doc.Pages) == 0 {
		return FieldMap{}
	}
	page := doc.Pages[0]

	midX := page.Width / 2
	var leftGlyphs, rightGlyphs []pdfio.Glyph
	for _, g := range page.Glyphs {
		if (g.X0+g.X1)/2 < midX {
			leftGlyphs = append(leftGlyphs, g)
		} else {
			rightGlyphs = append(rightGlyphs, g)
		}
	}

	leftLines := normalizeLabels(glyphsToLines(leftGlyphs))
	rightLines := normalizeLabels(glyphsToLines(rightGlyphs))

	data := instamartFields(leftLines, rightLines)

	_, tax, total := instamartTable(doc)
	data[constants.FieldTotalTax] = tax
	data[constants.FieldTotalAmount] = total
	return data
}

func instamartFields(leftLines, rightLines []string) FieldMap {
	grabPrefix := func(lines []string, key string) string {
		for _, l := range lines {
			if strings.HasPrefix(l, key) {
				return strings.TrimSpace(strings.ReplaceAll(l[len(key):], ":", ""))
			}
		}
		return ""
	}

	// Customer address: accumulate from the "Customer Address" marker line
	// until the "Order ID" line.
	var customerAddr []string
	capture := false
	for _, l := range leftLines {
		if strings.Contains(l, "Customer Address") {
			capture = true
			rest := strings.SplitN(l, "Customer Address", 2)[1]
			rest = strings.TrimSpace(strings.ReplaceAll(rest, ":", ""))
			if rest != "" {
				customerAddr = append(customerAddr, rest)
			}
			continue
		}
		if capture {
			if strings.Contains(l, "Order ID") {
				break
			}
			customerAddr = append(customerAddr, l)
		}
	}
	customerAddress := strings.TrimSpace(strings.Join(customerAddr, " "))

	// Seller address: accumulate from the "Address" marker line until the
	// "State" line.
	var sellerAddr []string
	capture = false
	for _, r := range rightLines {
		if strings.HasPrefix(r, "Address") {
			capture = true
			rest := strings.TrimSpace(strings.ReplaceAll(r[len("Address"):], ":", ""))
			if rest != "" {
				sellerAddr = append(sellerAddr, rest)
			}
			continue
		}
		if capture {
			if strings.HasPrefix(r, "State") {
				break
			}
			sellerAddr = append(sellerAddr, r)
		}
	}
	sellerAddress := strings.TrimSpace(strings.Join(sellerAddr, " "))
	sellerName := grabPrefix(rightLines, "Seller Name")

	invoiceNumber := grabPrefix(leftLines, "Invoice No")

	return FieldMap{
		constants.FieldInvoiceType:     "Tax Invoice",
		constants.FieldOrderNumber:     grabPrefix(leftLines, "Order ID"),
		constants.FieldInvoiceNumber:   invoiceNumber,
		constants.FieldInvoiceDetails:  invoiceNumber,
		constants.FieldInvoiceDate:     grabPrefix(leftLines, "Date of Invoice"),
		constants.FieldBillingAddress:  customerAddress,
		constants.FieldShippingAddress: customerAddress,
		constants.FieldSellerName:      sellerName,
		constants.FieldSellerAddress:   sellerAddress,
		constants.FieldSellerInfo:      fmt.Sprintf("%s, %s", sellerName, sellerAddress),
		constants.FieldSellerGST:       grabPrefix(rightLines, "Seller GSTIN"),
		constants.FieldFSSAILicense:    grabPrefix(rightLines, "FSSAI"),
		constants.FieldPlaceOfSupply:   grabPrefix(rightLines, "Place of Supply"),
		constants.FieldPlaceOfDelivery: grabPrefix(rightLines, "Place of Supply"),
		constants.FieldAmountInWords:   amountInWords(leftLines, rightLines),
	}
}

func instamartItems(doc *pdfio.Document) ItemTable {
	items, _, _ := instamartTable(doc)
	return canonicalTable(items)
}

// instamartTable reads the "description of goods" table on page 1. Rows
// missing the minimum column count, carrying an empty or "invoice value"
// description, or failing numeric parsing of the net/total columns are
// dropped entirely. Totals accumulate over the accepted rows; there is no
// separate totals row.
func instamartTable(doc *pdfio.Document) (items []LineItem, totalTax, totalAmount float64) {
	if len(doc.Pages) == 0 {
		return nil, 0.0, 0.0
	}
	for _, raw := range doc.Pages[0].Tables {
		grid := dropEmptyRows(raw)
		if len(grid) < 4 {
			continue
		}
		headerText := strings.ToLower(strings.Join(grid[2], " "))
		if !strings.Contains(headerText, "description of goods") {
			continue
		}

		sl := 1
		for _, row := range grid[3:] {
			if len(row) < 16 {
				continue
			}
			desc := strings.TrimSpace(cellAt(row, 1))
			if desc == "" || strings.Contains(strings.ToLower(desc), "invoice value") {
				continue
			}

			netVal, netOK := parseFloat(cellAt(row, 7))
			totalVal, totalOK := parseFloat(cellAt(row, 15))
			if !netOK || !totalOK {
				continue
			}
			taxVal := round2(totalVal - netVal)

			items = append(items, LineItem{
				SlNo:        sl,
				Description: strings.ReplaceAll(desc, "\n", " "),
				Qty:         safeFloat(cellAt(row, 2)),
				NetAmount:   netVal,
				TaxRate:     "",
				TaxType:     "GST",
				TaxAmount:   taxVal,
				TotalAmount: totalVal,
			})
			totalTax += taxVal
			totalAmount += totalVal
			sl++
		}
		break
	}
	return items, round2(totalTax), round2(totalAmount)
}
