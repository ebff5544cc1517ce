package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

// Zomato headers are table-free, so fields come from ordinary sequential
// regex capture over the whole-document flattened text.

var (
	zomInvoiceNumberRE = regexp.MustCompile(`(?i)Invoice No\.?\s*:\s*([\w\d]+)`)
	zomInvoiceDateRE   = regexp.MustCompile(`(?i)Invoice Date\s*:\s*([\d/]+)`)
	zomOrderNumberRE   = regexp.MustCompile(`(?i)Order ID\s*:\s*(\d+)`)
	zomSellerNameRE    = regexp.MustCompile(`(?i)Restaurant Name\s*:\s*(.*?)Restaurant Address`)
	zomSellerAddrRE    = regexp.MustCompile(`(?i)Restaurant Address\s*:\s*(.*?)Restaurant GSTIN`)
	zomGSTRE           = regexp.MustCompile(`(?i)Restaurant GSTIN\s*:\s*([\w\d]+)`)
	zomFSSAIRE         = regexp.MustCompile(`(?i)Restaurant FSSAI\s*:\s*(\d+)`)
	zomDeliveryAddrRE  = regexp.MustCompile(`(?i)Delivery Address\s*:\s*(.*?)State name`)
	zomPlaceRE         = regexp.MustCompile(`(?i)State name.*?:\s*(.*?)\(`)
	zomStateCodeRE     = regexp.MustCompile(`\((\d{2})\)`)
	zomAmountWordsRE   = regexp.MustCompile(`(?i)Amount \(in words\)\s*:\s*(.*?Only)`)
)

func zomatoHeader(doc *pdfio.Document) FieldMap {
	data := zomatoFields(doc.FullText())
	_, _, tax, total := zomatoTable(doc)
	data[constants.FieldTotalTax] = tax
	data[constants.FieldTotalAmount] = total
	return data
}

func zomatoFields(fullText string) FieldMap {
	text := clean(fullText)

	data := FieldMap{}
	data[constants.FieldInvoiceType] = "Tax Invoice"
	data[constants.FieldInvoiceNumber] = grab(zomInvoiceNumberRE, text)
	data[constants.FieldInvoiceDate] = grab(zomInvoiceDateRE, text)
	data[constants.FieldOrderNumber] = grab(zomOrderNumberRE, text)

	sellerName := grab(zomSellerNameRE, text)
	sellerAddr := grab(zomSellerAddrRE, text)
	data[constants.FieldSellerName] = sellerName
	data[constants.FieldSellerAddress] = sellerAddr
	data[constants.FieldSellerGST] = grab(zomGSTRE, text)
	data[constants.FieldFSSAILicense] = grab(zomFSSAIRE, text)
	data[constants.FieldSellerInfo] = fmt.Sprintf("%s, %s", sellerName, sellerAddr)

	deliveryAddr := grab(zomDeliveryAddrRE, text)
	data[constants.FieldBillingAddress] = deliveryAddr
	data[constants.FieldShippingAddress] = deliveryAddr

	place := grab(zomPlaceRE, text)
	data[constants.FieldPlaceOfSupply] = place
	data[constants.FieldPlaceOfDelivery] = place

	stateCode := grab(zomStateCodeRE, text)
	data[constants.FieldBillingStateCode] = stateCode
	data[constants.FieldShippingStateCode] = stateCode

	data[constants.FieldAmountInWords] = grab(zomAmountWordsRE, text)

	return data
}

func zomatoItems(doc *pdfio.Document) ItemTable {
	items, _, _, _ := zomatoTable(doc)
	return canonicalTable(items)
}

// zomatoTable locates the table whose header mentions "particulars", maps
// header text to semantic columns by substring matching, and walks rows:
// the "total value" row carries the document totals (tax derived as
// total - net) and halts the walk, "item(s) total" subtotal rows are
// skipped, every other non-blank row becomes one line item with combined
// CGST+SGST tax.
func zomatoTable(doc *pdfio.Document) (items []LineItem, net, tax, total float64) {
	for _, page := range doc.Pages {
		for _, raw := range page.Tables {
			grid := dropEmptyRows(raw)
			if len(grid) < 2 || maxRowWidth(grid) < 6 {
				continue
			}
			header := make([]string, len(grid[0]))
			for i, h := range grid[0] {
				header[i] = strings.ToLower(h)
			}
			if !strings.Contains(strings.Join(header, " "), "particulars") {
				continue
			}

			findCol := func(keys ...string) int {
				for idx, col := range header {
					ok := true
					for _, k := range keys {
						if !strings.Contains(col, k) {
							ok = false
							break
						}
					}
					if ok {
						return idx
					}
				}
				return -1
			}

			partCol := findCol("particular")
			grossCol := findCol("gross")
			discCol := findCol("discount")
			netCol := findCol("net")
			cgstRateCol := findCol("cgst", "rate")
			cgstAmtCol := findCol("cgst", "inr")
			sgstRateCol := findCol("sgst", "rate")
			sgstAmtCol := findCol("sgst", "inr")
			totalCol := findCol("total")

			sl := 1
			for _, row := range grid[1:] {
				part := strings.ToLower(cellAt(row, partCol))

				if strings.Contains(part, "total value") {
					net = safeFloat(cellAt(row, netCol))
					total = safeFloat(cellAt(row, totalCol))
					tax = round2(total - net)
					break
				}
				if strings.Contains(part, "item(s) total") {
					continue
				}
				if strings.TrimSpace(part) == "" {
					continue
				}

				items = append(items, LineItem{
					SlNo:        sl,
					Description: cellAt(row, partCol),
					UnitPrice:   safeFloat(cellAt(row, grossCol)),
					Discount:    safeFloat(cellAt(row, discCol)),
					Qty:         1,
					NetAmount:   safeFloat(cellAt(row, netCol)),
					TaxRate:     fmt.Sprintf("%s + %s", cellAt(row, cgstRateCol), cellAt(row, sgstRateCol)),
					TaxType:     "CGST+SGST",
					TaxAmount:   safeFloat(cellAt(row, cgstAmtCol)) + safeFloat(cellAt(row, sgstAmtCol)),
					TotalAmount: safeFloat(cellAt(row, totalCol)),
				})
				sl++
			}
			return items, net, tax, total
		}
	}
	return nil, 0.0, 0.0, 0.0
}

func maxRowWidth(t pdfio.Table) int {
	widest := 0
	for _, row := range t {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}
