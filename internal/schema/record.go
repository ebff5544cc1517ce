// Package schema normalizes raw vendor field maps into the canonical
// invoice record. This is the single seam guaranteeing a uniform output
// shape across the five heterogeneous vendor pipelines.
package schema

import (
	"strconv"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

// Record is the canonical, fully-typed extraction output. Numeric fields
// are always valid floats and string fields are never null.
type Record struct {
	InvoiceType       string  `json:"invoice_type"`
	InvoiceNumber     string  `json:"invoice_number"`
	InvoiceDate       string  `json:"invoice_date"`
	OrderNumber       string  `json:"order_number"`
	OrderDate         string  `json:"order_date"`
	SellerName        string  `json:"seller_name"`
	SellerAddress     string  `json:"seller_address"`
	SellerInfo        string  `json:"seller_info"`
	SellerGST         string  `json:"seller_gst"`
	SellerPAN         string  `json:"seller_pan"`
	FSSAILicense      string  `json:"fssai_license"`
	BillingAddress    string  `json:"billing_address"`
	ShippingAddress   string  `json:"shipping_address"`
	BillingStateCode  string  `json:"billing_state_code"`
	ShippingStateCode string  `json:"shipping_state_code"`
	PlaceOfSupply     string  `json:"place_of_supply"`
	PlaceOfDelivery   string  `json:"place_of_delivery"`
	InvoiceDetails    string  `json:"invoice_details"`
	AmountInWords     string  `json:"amount_in_words"`
	TotalTax          float64 `json:"total_tax"`
	TotalAmount       float64 `json:"total_amount"`
	ReverseCharge     string  `json:"reverse_charge"`
}

// Validate coerces a raw field map into a Record. String fields are copied
// verbatim when string-typed; the two numeric fields coerce any input to a
// float with 0.0 on parse failure. Unrecognized keys are ignored, missing
// keys take the schema default. Never fails, and is idempotent over its
// own output converted back to a map.
func Validate(fields map[string]any) Record {
	rec := Record{
		InvoiceType:   "Tax Invoice",
		ReverseCharge: "No",
	}

	str := func(key string, dst *string) {
		if v, ok := fields[key].(string); ok {
			*dst = v
		}
	}
	str(constants.FieldInvoiceType, &rec.InvoiceType)
	str(constants.FieldInvoiceNumber, &rec.InvoiceNumber)
	str(constants.FieldInvoiceDate, &rec.InvoiceDate)
	str(constants.FieldOrderNumber, &rec.OrderNumber)
	str(constants.FieldOrderDate, &rec.OrderDate)
	str(constants.FieldSellerName, &rec.SellerName)
	str(constants.FieldSellerAddress, &rec.SellerAddress)
	str(constants.FieldSellerInfo, &rec.SellerInfo)
	str(constants.FieldSellerGST, &rec.SellerGST)
	str(constants.FieldSellerPAN, &rec.SellerPAN)
	str(constants.FieldFSSAILicense, &rec.FSSAILicense)
	str(constants.FieldBillingAddress, &rec.BillingAddress)
	str(constants.FieldShippingAddress, &rec.ShippingAddress)
	str(constants.FieldBillingStateCode, &rec.BillingStateCode)
	str(constants.FieldShippingStateCode, &rec.ShippingStateCode)
	str(constants.FieldPlaceOfSupply, &rec.PlaceOfSupply)
	str(constants.FieldPlaceOfDelivery, &rec.PlaceOfDelivery)
	str(constants.FieldInvoiceDetails, &rec.InvoiceDetails)
	str(constants.FieldAmountInWords, &rec.AmountInWords)
	str(constants.FieldReverseCharge, &rec.ReverseCharge)

	rec.TotalTax = coerceFloat(fields[constants.FieldTotalTax])
	rec.TotalAmount = coerceFloat(fields[constants.FieldTotalAmount])

	return rec
}

// coerceFloat turns any raw value into a float64: empty or falsy input and
// any parse failure both yield 0.0. Never raises.
func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0.0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case string:
		if t == "" {
			return 0.0
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// Map renders the record as a field-name keyed map for template exports.
func (r Record) Map() map[string]any {
	return map[string]any{
		constants.FieldInvoiceType:       r.InvoiceType,
		constants.FieldInvoiceNumber:     r.InvoiceNumber,
		constants.FieldInvoiceDate:       r.InvoiceDate,
		constants.FieldOrderNumber:       r.OrderNumber,
		constants.FieldOrderDate:         r.OrderDate,
		constants.FieldSellerName:        r.SellerName,
		constants.FieldSellerAddress:     r.SellerAddress,
		constants.FieldSellerInfo:        r.SellerInfo,
		constants.FieldSellerGST:         r.SellerGST,
		constants.FieldSellerPAN:         r.SellerPAN,
		constants.FieldFSSAILicense:      r.FSSAILicense,
		constants.FieldBillingAddress:    r.BillingAddress,
		constants.FieldShippingAddress:   r.ShippingAddress,
		constants.FieldBillingStateCode:  r.BillingStateCode,
		constants.FieldShippingStateCode: r.ShippingStateCode,
		constants.FieldPlaceOfSupply:     r.PlaceOfSupply,
		constants.FieldPlaceOfDelivery:   r.PlaceOfDelivery,
		constants.FieldInvoiceDetails:    r.InvoiceDetails,
		constants.FieldAmountInWords:     r.AmountInWords,
		constants.FieldTotalTax:          r.TotalTax,
		constants.FieldTotalAmount:       r.TotalAmount,
		constants.FieldReverseCharge:     r.ReverseCharge,
	}
}
