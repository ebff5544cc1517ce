package extractor

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/cluster"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdfio"
)

var (
	fkOrderNumberRE   = regexp.MustCompile(`(?i)Order\s*Id[:\s]*([A-Z0-9]+)`)
	fkOrderDateRE     = regexp.MustCompile(`(?i)Order\s*Date[:\s]*([\d\-,: ]+[APM]{2})`)
	fkInvoiceNumberRE = regexp.MustCompile(`(?i)Invoice\s*No[:\s]*([A-Z0-9]+)`)
	fkInvoiceDateRE   = regexp.MustCompile(`(?i)Invoice\s*Date[:\s]*([\d\-,: ]+[APM]{2})`)
	fkGSTRE           = regexp.MustCompile(`(?i)GSTIN[:\s]*([0-9A-Z]{15})`)
	fkPANRE           = regexp.MustCompile(`(?i)PAN[:\s]*([A-Z]{5}\d{4}[A-Z])`)
	fkSellerNameRE    = regexp.MustCompile(`(?i)Sold\s*By\s+([^,|]+)`)
	fkSellerAddrRE    = regexp.MustCompile(`(?is)Sold\s*By.*?,\s*(.*?)\s*(?:Billing\s*Address|BillingAddress)`)
	fkBillingRE       = regexp.MustCompile(`(?is)Billing\s*Address\s+(.*?)\s+Shipping\s*ADDRESS`)
	fkShippingRE      = regexp.MustCompile(`(?is)Shipping\s*ADDRESS\s+(.*?)\s+Seller\s*Registered\s*Address`)
	// The escaped-backslash class below never matches a digit run; it is
	// preserved from the production rules as a known extraction gap, and
	// the validator's 0.0 default covers the field.
	fkTotalPriceRE = regexp.MustCompile(`(?i)TOTAL\s*PRICE[:\s]*([\\d.]+)`)
	fkStateRE      = regexp.MustCompile(`IN-([A-Z]{2})`)
	fkNumberRE     = regexp.MustCompile(`\d+\.\d+|\d+`)
)

func flipkartHeader(doc *pdfio.Document) FieldMap {
	clusterText := cluster.Flatten(doc, cluster.DenseAware)
	return flipkartFields(clusterText)
}

func flipkartFields(clusterText string) FieldMap {
	data := FieldMap{}

	data[constants.FieldInvoiceType] = "Tax Invoice"

	data[constants.FieldOrderNumber] = grab(fkOrderNumberRE, clusterText)
	data[constants.FieldOrderDate] = grab(fkOrderDateRE, clusterText)
	data[constants.FieldInvoiceNumber] = grab(fkInvoiceNumberRE, clusterText)
	data[constants.FieldInvoiceDate] = grab(fkInvoiceDateRE, clusterText)

	data[constants.FieldSellerGST] = grab(fkGSTRE, clusterText)
	data[constants.FieldSellerPAN] = grab(fkPANRE, clusterText)

	sellerName := grab(fkSellerNameRE, clusterText)
	sellerAddr := grab(fkSellerAddrRE, clusterText)
	data[constants.FieldSellerName] = sellerName
	data[constants.FieldSellerAddress] = sellerAddr

	data[constants.FieldBillingAddress] = grab(fkBillingRE, clusterText)
	data[constants.FieldShippingAddress] = grab(fkShippingRE, clusterText)

	data[constants.FieldTotalAmount] = grab(fkTotalPriceRE, clusterText)
	data[constants.FieldReverseCharge] = "No"

	state := grab(fkStateRE, clusterText)
	data[constants.FieldBillingStateCode] = state
	data[constants.FieldShippingStateCode] = state
	data[constants.FieldPlaceOfSupply] = state
	data[constants.FieldPlaceOfDelivery] = state

	data[constants.FieldSellerInfo] = strings.Trim(sellerName+", "+sellerAddr, ", ")

	data[constants.FieldInvoiceDetails] = ""
	data[constants.FieldFSSAILicense] = ""
	data[constants.FieldAmountInWords] = ""

	return data
}

// flipkartItems flattens the first table's cell text into ordered lines,
// then treats any line carrying at least 6 numeric tokens as the tail of
// one item: the last six numbers are qty, unit price, discount, net, tax
// and total in that fixed order, and everything accumulated since the
// previous numeric line is the description.
func flipkartItems(doc *pdfio.Document) ItemTable {
	if len(doc.Pages) == 0 || len(doc.Pages[0].Tables) == 0 {
		return ItemTable{}
	}
	table := doc.Pages[0].Tables[0]

	var lines []string
	for _, row := range table {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			lines = append(lines, strings.Split(cell, "\n")...)
		}
	}
	return flipkartItemsFromLines(lines)
}

func flipkartItemsFromLines(lines []string) ItemTable {
	type rawItem struct {
		desc []string
		nums []string
	}
	var rows []rawItem
	var desc []string
	for _, line := range lines {
		nums := fkNumberRE.FindAllString(line, -1)
		if len(nums) >= 6 {
			rows = append(rows, rawItem{desc: desc, nums: nums[len(nums)-6:]})
			desc = nil
		} else {
			desc = append(desc, line)
		}
	}

	var items []LineItem
	for i, r := range rows {
		fullDesc := strings.Join(r.desc, " ")
		lower := strings.ToLower(fullDesc)
		if strings.Contains(lower, "shipping") || strings.Contains(lower, "handling") {
			continue
		}
		items = append(items, LineItem{
			SlNo:        i + 1,
			Description: fullDesc,
			Qty:         safeFloat(r.nums[0]),
			UnitPrice:   safeFloat(r.nums[1]),
			Discount:    safeFloat(r.nums[2]),
			NetAmount:   safeFloat(r.nums[3]),
			TaxRate:     "",
			TaxType:     "IGST",
			TaxAmount:   safeFloat(r.nums[4]),
			TotalAmount: safeFloat(r.nums[5]),
		})
	}
	return canonicalTable(items)
}
