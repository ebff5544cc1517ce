package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

func zomatoFixture() *pdfio.Document {
	return docWithTables(pdfio.Table{
		{"Particulars", "Gross Value", "Discount", "Net Value", "CGST Rate", "CGST (INR)", "SGST Rate", "SGST (INR)", "Total (INR)"},
		{"Butter Chicken", "250.00", "0.00", "250.00", "2.5%", "6.25", "2.5%", "6.25", "262.50"},
		{"", "", "", "", "", "", "", "", ""},
		{"Item(s) Total", "250.00", "0.00", "250.00", "", "6.25", "", "6.25", "262.50"},
		{"Total Value", "", "", "250.00", "", "", "", "", "262.50"},
		{"Thank you for ordering", "1", "1", "1", "1", "1", "1", "1", "1"},
	})
}

func TestZomatoTable_ItemsAndTotals(t *testing.T) {
	items, net, tax, total := zomatoTable(zomatoFixture())

	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, 1, it.SlNo)
	assert.Equal(t, "Butter Chicken", it.Description)
	assert.Equal(t, 250.0, it.UnitPrice)
	assert.Equal(t, 0.0, it.Discount)
	assert.Equal(t, 1.0, it.Qty)
	assert.Equal(t, 250.0, it.NetAmount)
	assert.Equal(t, "2.5% + 2.5%", it.TaxRate)
	assert.Equal(t, "CGST+SGST", it.TaxType)
	assert.Equal(t, 12.5, it.TaxAmount)
	assert.Equal(t, 262.5, it.TotalAmount)

	assert.Equal(t, 250.0, net)
	assert.Equal(t, 12.5, tax)
	assert.Equal(t, 262.5, total)
}

// Rows printed below the totals row are footer noise and must never become
// line items.
func TestZomatoTable_TotalsRowHaltsWalk(t *testing.T) {
	items, _, _, _ := zomatoTable(zomatoFixture())
	for _, it := range items {
		assert.NotEqual(t, "Thank you for ordering", it.Description)
	}
}

func TestZomatoTable_NarrowTablesIgnored(t *testing.T) {
	doc := docWithTables(pdfio.Table{
		{"Particulars", "Total"},
		{"Butter Chicken", "262.50"},
	})
	items, net, tax, total := zomatoTable(doc)
	assert.Nil(t, items)
	assert.Equal(t, 0.0, net)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 0.0, total)
}

func TestZomatoItems_CanonicalColumns(t *testing.T) {
	table := zomatoItems(zomatoFixture())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, constants.LineItemColumns, table.Columns)
	assert.Equal(t, "12.5", table.Rows[0][8])
}

func TestZomatoHeader_MergesTotals(t *testing.T) {
	doc := zomatoFixture()
	doc.Pages[0].Text = "Invoice No: ZOM123 restaurant invoice"

	data := zomatoHeader(doc)
	assert.Equal(t, 12.5, data[constants.FieldTotalTax])
	assert.Equal(t, 262.5, data[constants.FieldTotalAmount])
	assert.Equal(t, "ZOM123", data[constants.FieldInvoiceNumber])
}

func TestZomatoFields(t *testing.T) {
	text := "Tax Invoice Invoice No: ZOM20240515 Invoice Date : 15/05/2024 " +
		"Order ID: 5551234567 Restaurant Name: Ethernal Kitchen Restaurant " +
		"Address: 12 Church Street Bangalore Restaurant GSTIN: 29AAACZ1234F1Z5 " +
		"Restaurant FSSAI: 11223344556677 Delivery Address: 99 Hill Road Mumbai " +
		"State name & Place of Supply: Karnataka (29) Amount (in words) : Two " +
		"Hundred Sixty Two Rupees Fifty Paise Only"

	data := zomatoFields(text)

	assert.Equal(t, "ZOM20240515", data[constants.FieldInvoiceNumber])
	assert.Equal(t, "15/05/2024", data[constants.FieldInvoiceDate])
	assert.Equal(t, "5551234567", data[constants.FieldOrderNumber])
	assert.Equal(t, "Ethernal Kitchen", data[constants.FieldSellerName])
	assert.Equal(t, "12 Church Street Bangalore", data[constants.FieldSellerAddress])
	assert.Equal(t, "29AAACZ1234F1Z5", data[constants.FieldSellerGST])
	assert.Equal(t, "11223344556677", data[constants.FieldFSSAILicense])
	assert.Equal(t, "99 Hill Road Mumbai", data[constants.FieldBillingAddress])
	assert.Equal(t, "99 Hill Road Mumbai", data[constants.FieldShippingAddress])
	assert.Equal(t, "Karnataka", data[constants.FieldPlaceOfSupply])
	assert.Equal(t, "29", data[constants.FieldBillingStateCode])
	assert.Equal(t, "Two Hundred Sixty Two Rupees Fifty Paise Only", data[constants.FieldAmountInWords])
	assert.Equal(t, "Ethernal Kitchen, 12 Church Street Bangalore", data[constants.FieldSellerInfo])
}
