package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// Blinkit ships one known template, so header cells and line items are
// read by fixed (row, column) grid coordinates discovered empirically.
// Any layout change breaks this silently: every lookup degrades to its
// default value.

const (
	blinkitSellerName   = "Zomato Hyperpure Private Limited ZHPL"
	blinkitFirstItemRow = 6
)

var (
	blkInvoiceNumberRE = regexp.MustCompile(`Invoice Number\s*:\s*([\w\-]+)`)
	blkGSTRE           = regexp.MustCompile(`GSTIN\s*:\s*([\w\d]+)`)
	blkFSSAIRE         = regexp.MustCompile(`FSSAI.*?(\d{10,})`)
	blkInvoiceToRE     = regexp.MustCompile(`(?i)Invoice To Name\s*:\s*([^,]+)`)
	blkAddressRE       = regexp.MustCompile(`(?i)Address\s*:\s*(.*?)(?:Order Id|$)`)
	blkOrderIDRE       = regexp.MustCompile(`Order Id\s*:\s*(\d+)`)
	blkInvoiceDateRE   = regexp.MustCompile(`Invoice\s*:\s*([\w\-]+)`)
	blkPlaceRE         = regexp.MustCompile(`(?i)Place of\s*:\s*(\w+)`)
	blkAmountWordsRE   = regexp.MustCompile(`(?i)Amount in\s+(.*?)\s+Words`)
)

// blinkitGrid returns the first page's only table, or nil when the
// document does not carry one (document-level failure, absorbed upstream
// as an all-defaults result).
func blinkitGrid(doc *pdfio.Document) pdfio.Table {
	if len(doc.Pages) == 0 || len(doc.Pages[0].Tables) == 0 {
		return nil
	}
	return doc.Pages[0].Tables[0]
}

func blinkitHeader(doc *pdfio.Document) FieldMap {
	grid := blinkitGrid(doc)
	if grid == nil {
		return FieldMap{}
	}
	data := blinkitFields(grid)
	_, tax, total := blinkitTable(grid)
	data[constants.FieldTotalTax] = tax
	data[constants.FieldTotalAmount] = total
	return data
}

func blinkitFields(grid pdfio.Table) FieldMap {
	cell := func(r, c int) string {
		if r >= len(grid) {
			return ""
		}
		return clean(cellAt(grid[r], c))
	}

	data := FieldMap{}

	// R1 C10: invoice number.
	data[constants.FieldInvoiceNumber] = grab(blkInvoiceNumberRE, cell(1, 10))

	// R1 C0: seller block. The legal-entity name is fixed; the address is
	// whatever follows it.
	r1c0 := cell(1, 0)
	data[constants.FieldSellerName] = blinkitSellerName
	sellerAddr := ""
	if idx := strings.Index(r1c0, blinkitSellerName); idx >= 0 {
		sellerAddr = strings.TrimSpace(r1c0[idx+len(blinkitSellerName):])
	}
	data[constants.FieldSellerAddress] = sellerAddr
	data[constants.FieldSellerInfo] = fmt.Sprintf("%s, %s", blinkitSellerName, sellerAddr)

	// R2 C0: GSTIN. R3 C0: FSSAI.
	data[constants.FieldSellerGST] = grab(blkGSTRE, cell(2, 0))
	data[constants.FieldFSSAILicense] = grab(blkFSSAIRE, cell(3, 0))

	// R4 C0: invoice-to name and address.
	r4c0 := cell(4, 0)
	data["invoice_to"] = grab(blkInvoiceToRE, r4c0)
	address := grab(blkAddressRE, r4c0)
	data[constants.FieldBillingAddress] = address
	data[constants.FieldShippingAddress] = address

	// R4 C10: order id, invoice date, place of supply.
	r4c10 := cell(4, 10)
	data[constants.FieldOrderNumber] = grab(blkOrderIDRE, r4c10)
	invoiceDate := grab(blkInvoiceDateRE, r4c10)
	data[constants.FieldInvoiceDate] = invoiceDate
	data[constants.FieldOrderDate] = invoiceDate
	place := grab(blkPlaceRE, r4c10)
	data[constants.FieldPlaceOfSupply] = place
	data[constants.FieldPlaceOfDelivery] = place

	// R8 C0: amount in words.
	data[constants.FieldAmountInWords] = grab(blkAmountWordsRE, cell(8, 0))

	data[constants.FieldInvoiceType] = "Tax Invoice"
	return data
}

func blinkitItems(doc *pdfio.Document) ItemTable {
	grid := blinkitGrid(doc)
	if grid == nil {
		return ItemTable{}
	}
	items, _, _ := blinkitTable(grid)
	return canonicalTable(items)
}

// blinkitTable reads line items from the fixed row offset until the row
// whose first cell equals "total", which carries the document totals.
func blinkitTable(grid pdfio.Table) (items []LineItem, totalTax, totalAmount float64) {
	sl := 1
	for i := blinkitFirstItemRow; i < len(grid); i++ {
		row := grid[i]

		if strings.EqualFold(strings.TrimSpace(cellAt(row, 0)), "total") {
			totalTax = safeFloat(cellAt(row, 8)) + safeFloat(cellAt(row, 10))
			totalAmount = safeFloat(cellAt(row, 13))
			break
		}

		desc := clean(cellAt(row, 2))
		if desc == "" {
			continue
		}

		netVal := safeFloat(cellAt(row, 6))
		totalVal := safeFloat(cellAt(row, 13))

		items = append(items, LineItem{
			SlNo:        sl,
			Description: desc,
			UnitPrice:   safeFloat(cellAt(row, 3)),
			Discount:    safeFloat(cellAt(row, 4)),
			Qty:         safeFloat(cellAt(row, 5)),
			NetAmount:   netVal,
			TaxRate:     "",
			TaxType:     "GST",
			TaxAmount:   round2(totalVal - netVal),
			TotalAmount: totalVal,
		})
		sl++
	}
	return items, round2(totalTax), round2(totalAmount)
}
