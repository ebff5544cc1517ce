package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// blinkitFixture mirrors the single-template grid: header cells at fixed
// coordinates, items from row 6, totals in the row whose first cell is
// "Total".
func blinkitFixture() pdfio.Table {
	row := func(cells map[int]string) []string {
		r := make([]string, 14)
		for i, c := range cells {
			r[i] = c
		}
		return r
	}
	return pdfio.Table{
		row(map[int]string{0: "Tax Invoice"}),
		row(map[int]string{
			0:  "Zomato Hyperpure Private Limited ZHPL Plot 5 Industrial Area Gurugram Haryana 122001",
			10: "Invoice Number : BLK-2024-00042",
		}),
		row(map[int]string{0: "GSTIN : 06AAECZ1234F1Z5"}),
		row(map[int]string{0: "FSSAI License No 10020064002537"}),
		row(map[int]string{
			0:  "Invoice To Name : John Doe, Address : 42 MG Road Bengaluru",
			10: "Order Id : 9876543210 Invoice : 15-05-2024 Place of : Haryana",
		}),
		row(map[int]string{0: "Sl", 2: "Description", 3: "Rate", 5: "Qty", 13: "Total"}),
		row(map[int]string{
			0: "1", 2: "Amul Butter 500g", 3: "250.0", 4: "0.0", 5: "2",
			6: "500.0", 8: "12.5", 10: "12.5", 13: "525.0",
		}),
		row(map[int]string{0: "Total", 8: "12.5", 10: "12.5", 13: "525.0"}),
		row(map[int]string{0: "Amount in Five Hundred Twenty Five Rupees Words", 2: "Ghost Item", 6: "10", 13: "11"}),
	}
}

func TestBlinkitFields(t *testing.T) {
	data := blinkitFields(blinkitFixture())

	assert.Equal(t, "BLK-2024-00042", data[constants.FieldInvoiceNumber])
	assert.Equal(t, blinkitSellerName, data[constants.FieldSellerName])
	assert.Equal(t, "Plot 5 Industrial Area Gurugram Haryana 122001", data[constants.FieldSellerAddress])
	assert.Equal(t, "06AAECZ1234F1Z5", data[constants.FieldSellerGST])
	assert.Equal(t, "10020064002537", data[constants.FieldFSSAILicense])
	assert.Equal(t, "John Doe", data["invoice_to"])
	assert.Equal(t, "42 MG Road Bengaluru", data[constants.FieldBillingAddress])
	assert.Equal(t, "9876543210", data[constants.FieldOrderNumber])
	assert.Equal(t, "15-05-2024", data[constants.FieldInvoiceDate])
	assert.Equal(t, "15-05-2024", data[constants.FieldOrderDate])
	assert.Equal(t, "Haryana", data[constants.FieldPlaceOfSupply])
	assert.Equal(t, "Five Hundred Twenty Five Rupees", data[constants.FieldAmountInWords])
}

func TestBlinkitTable_ItemsUntilTotalRow(t *testing.T) {
	items, tax, total := blinkitTable(blinkitFixture())

	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, 1, it.SlNo)
	assert.Equal(t, "Amul Butter 500g", it.Description)
	assert.Equal(t, 250.0, it.UnitPrice)
	assert.Equal(t, 0.0, it.Discount)
	assert.Equal(t, 2.0, it.Qty)
	assert.Equal(t, 500.0, it.NetAmount)
	assert.Equal(t, "GST", it.TaxType)
	assert.Equal(t, 25.0, it.TaxAmount)
	assert.Equal(t, 525.0, it.TotalAmount)

	assert.Equal(t, 25.0, tax)
	assert.Equal(t, 525.0, total)
}

// The row after the totals row carries a populated description cell; the
// walk must already have stopped.
func TestBlinkitTable_IgnoresRowsBelowTotal(t *testing.T) {
	items, _, _ := blinkitTable(blinkitFixture())
	for _, it := range items {
		assert.NotEqual(t, "Ghost Item", it.Description)
	}
}

func TestBlinkitHeader_NoTable(t *testing.T) {
	data := blinkitHeader(&pdfio.Document{Pages: []pdfio.Page{{Number: 1}}})
	assert.Empty(t, data)
}

func TestBlinkitItems_CanonicalColumns(t *testing.T) {
	doc := docWithTables(blinkitFixture())
	table := blinkitItems(doc)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, constants.LineItemColumns, table.Columns)
	assert.Equal(t, "525", table.Rows[0][9])
}
