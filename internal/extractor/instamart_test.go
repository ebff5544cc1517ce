package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// textGlyphs lays out text one glyph per character starting at x on the
// given baseline, 5 units per glyph.
func textGlyphs(text string, x, top float64) []pdfio.Glyph {
	glyphs := make([]pdfio.Glyph, 0, len(text))
	for i, r := range text {
		x0 := x + float64(i)*5
		glyphs = append(glyphs, pdfio.Glyph{X0: x0, X1: x0 + 5, Top: top, Bottom: top + 10, Text: string(r)})
	}
	return glyphs
}

func TestGlyphsToLines_SpacingAndBuckets(t *testing.T) {
	var glyphs []pdfio.Glyph
	// "Order" then a wide gap to "ID:42" on the same baseline.
	glyphs = append(glyphs, textGlyphs("Order", 0, 10)...)
	glyphs = append(glyphs, textGlyphs("ID:42", 40, 10)...)
	// A fragment 2 units lower falls inside the vertical tolerance.
	glyphs = append(glyphs, textGlyphs("X", 100, 12)...)
	// A clearly separate line below.
	glyphs = append(glyphs, textGlyphs("Footer", 0, 40)...)

	lines := glyphsToLines(glyphs)
	require.Len(t, lines, 2)
	assert.Equal(t, "Order ID:42 X", lines[0])
	assert.Equal(t, "Footer", lines[1])
}

func TestGlyphsToLines_Empty(t *testing.T) {
	assert.Empty(t, glyphsToLines(nil))
}

func TestNormalizeLabels(t *testing.T) {
	lines := normalizeLabels([]string{"InvoiceTo John", "SellerGSTIN: 27X", "untouched"})
	assert.Equal(t, []string{"Invoice To John", "Seller GSTIN: 27X", "untouched"}, lines)
}

func TestAmountInWords_Recovered(t *testing.T) {
	left := []string{"Amount in Words:", "Five Hundred"}
	right := []string{"Rupees Only E&OE"}
	got := amountInWords(left, right)
	assert.Equal(t, "Fivehundred rupees only", got)
}

func TestAmountInWords_NoMarker(t *testing.T) {
	assert.Equal(t, "", amountInWords([]string{"Five Hundred Rupees Only"}, nil))
}

func TestInstamartFields(t *testing.T) {
	left := []string{
		"Invoice To: John Doe",
		"Customer Address: 42 MG",
		"Road Bengaluru 560001",
		"Order ID: SWGY123",
		"Invoice No: INS-001",
		"Date of Invoice: 15-05-2024",
		"Amount in Words:",
		"Five Hundred Rupees Only",
	}
	right := []string{
		"Seller Name: KiranaKart Technologies",
		"Address: Plot 12",
		"Industrial Estate Pune",
		"State: Maharashtra",
		"Seller GSTIN: 27AAFCK1234F1Z5",
		"FSSAI: 11522998000504",
		"Place of Supply: Maharashtra",
	}

	data := instamartFields(left, right)

	assert.Equal(t, "SWGY123", data[constants.FieldOrderNumber])
	assert.Equal(t, "INS-001", data[constants.FieldInvoiceNumber])
	assert.Equal(t, "INS-001", data[constants.FieldInvoiceDetails])
	assert.Equal(t, "15-05-2024", data[constants.FieldInvoiceDate])
	assert.Equal(t, "42 MG Road Bengaluru 560001", data[constants.FieldBillingAddress])
	assert.Equal(t, "42 MG Road Bengaluru 560001", data[constants.FieldShippingAddress])
	assert.Equal(t, "KiranaKart Technologies", data[constants.FieldSellerName])
	assert.Equal(t, "Plot 12 Industrial Estate Pune", data[constants.FieldSellerAddress])
	assert.Equal(t, "27AAFCK1234F1Z5", data[constants.FieldSellerGST])
	assert.Equal(t, "11522998000504", data[constants.FieldFSSAILicense])
	assert.Equal(t, "Maharashtra", data[constants.FieldPlaceOfSupply])
	assert.Equal(t, "KiranaKart Technologies, Plot 12 Industrial Estate Pune", data[constants.FieldSellerInfo])
}

func instamartFixture() *pdfio.Document {
	return docWithTables(pdfio.Table{
		{"Tax Invoice"},
		{"Swiggy Instamart"},
		{"Sl", "Description of Goods", "Qty", "UOM", "Rate", "Disc", "Taxable", "Net Amount",
			"CGST%", "CGST", "SGST%", "SGST", "CESS", "Misc", "Gross", "Total"},
		{"1", "Potato Chips 150g", "2", "pcs", "50", "0", "100", "100.00",
			"9", "9.00", "9", "9.00", "0", "0", "", "118.00"},
		{"2", "Milk 1L", "1", "pcs", "60", "0", "60", "60.00",
			"0", "0", "0", "0", "0", "0", "", "n/a"},
		{"", "Invoice Value", "", "", "", "", "", "178.00",
			"", "", "", "", "", "", "", "178.00"},
		{"short row"},
	})
}

func TestInstamartTable_FiltersAndSums(t *testing.T) {
	items, tax, total := instamartTable(instamartFixture())

	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, 1, it.SlNo)
	assert.Equal(t, "Potato Chips 150g", it.Description)
	assert.Equal(t, 2.0, it.Qty)
	assert.Equal(t, 100.0, it.NetAmount)
	assert.Equal(t, "GST", it.TaxType)
	assert.Equal(t, 18.0, it.TaxAmount)
	assert.Equal(t, 118.0, it.TotalAmount)

	assert.Equal(t, 18.0, tax)
	assert.Equal(t, 118.0, total)
}

func TestInstamartTable_NoMatchingTable(t *testing.T) {
	items, tax, total := instamartTable(docWithTables(pdfio.Table{
		{"Particulars", "Total"},
		{"a", "b"},
		{"c", "d"},
		{"e", "f"},
	}))
	assert.Nil(t, items)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 0.0, total)
}

func TestInstamartHeader_SplitsAtMidpoint(t *testing.T) {
	var glyphs []pdfio.Glyph
	glyphs = append(glyphs, textGlyphs("Invoice No: IN1", 0, 10)...)
	glyphs = append(glyphs, textGlyphs("Seller Name: Kart", 320, 10)...)
	doc := &pdfio.Document{Pages: []pdfio.Page{{Number: 1, Width: 600, Height: 800, Glyphs: glyphs}}}

	data := instamartHeader(doc)
	assert.Equal(t, "IN1", data[constants.FieldInvoiceNumber])
	assert.Equal(t, "Kart", data[constants.FieldSellerName])
}
