package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/cluster"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// Amazon invoices print label/value pairs at drifting baselines, so fields
// are grabbed from clustered text. Amounts come from the page's tabular
// data instead: the regex view of the totals block is too noisy.

const datePattern = `\d{2}[./-]\d{2}[./-]\d{4}`

var (
	amzOrderNumberRE   = regexp.MustCompile(`(?i)Order (Number|Id)[:\s]*([\w\-]+)`)
	amzInvoiceNumberRE = regexp.MustCompile(`(?i)Invoice (No|Number)[:\s]*([\w\-]+)`)
	amzOrderDateRE     = regexp.MustCompile(`(?i)Order Date[:\s]*(` + datePattern + `)`)
	amzInvoiceDateRE   = regexp.MustCompile(`(?i)Invoice Date[:\s]*(` + datePattern + `)`)
	amzInvoiceDetailRE = regexp.MustCompile(`(?i)Invoice Details[:\s]*(.+?)(?:Invoice Date|Order Date|Sl\.)`)
	amzBillingRE       = regexp.MustCompile(`(?is)Billing Address[:\s]*([\s\S]*?\d{6})`)
	amzShippingRE      = regexp.MustCompile(`(?is)Shipping Address[:\s]*([\s\S]*?\d{6})`)
	amzSellerNameRE    = regexp.MustCompile(`(?i)Sold By[:\s]*([^,\n]+)`)
	amzSellerAddrRE    = regexp.MustCompile(`(?is)Sold By[:\s]*(.+?)(?:PAN No|GST Registration|Billing Address)`)
	amzGSTRE           = regexp.MustCompile(`(?i)GST Registration No[:\s]*(\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z])`)
	amzPANRE           = regexp.MustCompile(`(?i)PAN No[:\s]*([A-Z]{5}\d{4}[A-Z])`)
	amzStateCodeRE     = regexp.MustCompile(`(?i)State/UT Code[:\s]*(\d{1,2})`)
	amzPlaceRE         = regexp.MustCompile(`(?i)Place of (?:supply|delivery)[:\s]*([A-Z\s]+?)(?:Place of|Invoice|$)`)
	amzAmountWordsRE   = regexp.MustCompile(`(?i)Amount in Words[:\s]*(.+?)(?:Net|Tax|Whether|$)`)
	numericTokenRE     = regexp.MustCompile(`[\d.]+`)
)

func amazonHeader(doc *pdfio.Document) FieldMap {
	clusterText := cluster.Flatten(doc, cluster.Uniform)
	data := amazonFields(clusterText)
	tax, total := amazonTotals(doc)
	data[constants.FieldTotalTax] = tax
	data[constants.FieldTotalAmount] = total
	return data
}

// amazonFields grabs header fields from the flattened clustered text.
// Address captures run until a 6-digit postal code: address blocks are
// multi-line and otherwise over- or under-capture.
func amazonFields(clusterText string) FieldMap {
	text := clean(strings.ReplaceAll(clusterText, "|", " "))

	data := FieldMap{}

	setGroup2 := func(field string, re *regexp.Regexp) {
		if m := re.FindStringSubmatch(text); m != nil {
			data[field] = strings.TrimSpace(m[2])
		} else {
			data[field] = ""
		}
	}
	setGroup2(constants.FieldOrderNumber, amzOrderNumberRE)
	setGroup2(constants.FieldInvoiceNumber, amzInvoiceNumberRE)

	data[constants.FieldOrderDate] = grab(amzOrderDateRE, text)
	data[constants.FieldInvoiceDate] = grab(amzInvoiceDateRE, text)

	data[constants.FieldInvoiceDetails] = truncate(clean(grab(amzInvoiceDetailRE, text)), 100)

	data[constants.FieldBillingAddress] = grab(amzBillingRE, text)
	data[constants.FieldShippingAddress] = grab(amzShippingRE, text)

	data[constants.FieldSellerName] = grab(amzSellerNameRE, text)
	data[constants.FieldSellerAddress] = grab(amzSellerAddrRE, text)

	data[constants.FieldSellerGST] = grab(amzGSTRE, text)
	data[constants.FieldSellerPAN] = grab(amzPANRE, text)

	stateCode := grab(amzStateCodeRE, text)
	data[constants.FieldBillingStateCode] = stateCode
	data[constants.FieldShippingStateCode] = stateCode

	place := grab(amzPlaceRE, text)
	data[constants.FieldPlaceOfSupply] = place
	data[constants.FieldPlaceOfDelivery] = place

	data[constants.FieldAmountInWords] = truncate(clean(grab(amzAmountWordsRE, text)), 100)

	data[constants.FieldInvoiceType] = "Tax Invoice"
	return data
}

// amazonTotals locates the widest table carrying both a tax-amount and a
// total-amount column, then pulls the first numeric token of each from the
// row containing the literal token "total". Returns (0, 0) when no table
// qualifies.
func amazonTotals(doc *pdfio.Document) (tax, total float64) {
	for _, page := range doc.Pages {
		if len(page.Tables) == 0 {
			continue
		}
		grid := dropEmptyRows(largestTable(page.Tables))
		if len(grid) < 2 {
			continue
		}

		taxCol, totalCol := -1, -1
		for idx, col := range grid[0] {
			c := strings.ToLower(col)
			if strings.Contains(c, "tax") && strings.Contains(c, "amount") {
				taxCol = idx
			}
			if strings.Contains(c, "total") && strings.Contains(c, "amount") {
				totalCol = idx
			}
		}
		if taxCol < 0 || totalCol < 0 {
			return 0.0, 0.0
		}

		for _, row := range grid[1:] {
			if !rowContainsTotal(row) {
				continue
			}
			return firstNumeric(cellAt(row, taxCol)), firstNumeric(cellAt(row, totalCol))
		}
	}
	return 0.0, 0.0
}

// amazonItems accepts the first table whose header row carries description,
// a quantity synonym, and total columns, returning its data rows verbatim
// under normalized column names.
func amazonItems(doc *pdfio.Document) ItemTable {
	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			grid := dropEmptyRows(table)
			if len(grid) == 0 {
				continue
			}
			header := make([]string, len(grid[0]))
			for i, h := range grid[0] {
				header[i] = strings.ToLower(h)
			}
			if !headerHas(header, "description") ||
				!(headerHas(header, "qty") || headerHas(header, "quantity")) ||
				!headerHas(header, "total") {
				continue
			}

			columns := make([]string, len(header))
			for i, h := range header {
				if h == "" {
					columns[i] = fmt.Sprintf("Col_%d", i)
					continue
				}
				columns[i] = titleCase(strings.ReplaceAll(h, " ", "_"))
			}
			rows := make([][]string, 0, len(grid)-1)
			for _, row := range grid[1:] {
				cells := make([]string, len(row))
				for i, c := range row {
					cells[i] = strings.TrimSpace(c)
				}
				rows = append(rows, cells)
			}
			return ItemTable{Columns: columns, Rows: rows}
		}
	}
	return ItemTable{}
}

func headerHas(header []string, sub string) bool {
	for _, h := range header {
		if strings.Contains(h, sub) {
			return true
		}
	}
	return false
}

func rowContainsTotal(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), "total") {
			return true
		}
	}
	return false
}

func firstNumeric(cell string) float64 {
	if tok := numericTokenRE.FindString(cell); tok != "" {
		return safeFloat(tok)
	}
	return 0.0
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

// titleCase capitalizes the first letter of every alphabetic run, so
// "tax_amount" becomes "Tax_Amount".
func titleCase(s string) string {
	var b strings.Builder
	prevAlpha := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevAlpha:
			b.WriteRune(unicode.ToUpper(r))
			prevAlpha = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevAlpha = false
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
