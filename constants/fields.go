package constants

// Canonical header field names. Vendor extractors populate a subset of
// these; the schema validator fills in defaults for the rest.
const (
	FieldInvoiceType       = "invoice_type"
	FieldInvoiceNumber     = "invoice_number"
	FieldInvoiceDate       = "invoice_date"
	FieldOrderNumber       = "order_number"
	FieldOrderDate         = "order_date"
	FieldSellerName        = "seller_name"
	FieldSellerAddress     = "seller_address"
	FieldSellerInfo        = "seller_info"
	FieldSellerGST         = "seller_gst"
	FieldSellerPAN         = "seller_pan"
	FieldFSSAILicense      = "fssai_license"
	FieldBillingAddress    = "billing_address"
	FieldShippingAddress   = "shipping_address"
	FieldBillingStateCode  = "billing_state_code"
	FieldShippingStateCode = "shipping_state_code"
	FieldPlaceOfSupply     = "place_of_supply"
	FieldPlaceOfDelivery   = "place_of_delivery"
	FieldInvoiceDetails    = "invoice_details"
	FieldAmountInWords     = "amount_in_words"
	FieldTotalTax          = "total_tax"
	FieldTotalAmount       = "total_amount"
	FieldReverseCharge     = "reverse_charge"
)

// HeaderFields is the canonical field order used for template-less exports.
var HeaderFields = []string{
	FieldInvoiceType,
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldOrderNumber,
	FieldOrderDate,
	FieldSellerName,
	FieldSellerAddress,
	FieldSellerInfo,
	FieldSellerGST,
	FieldSellerPAN,
	FieldFSSAILicense,
	FieldBillingAddress,
	FieldShippingAddress,
	FieldBillingStateCode,
	FieldShippingStateCode,
	FieldPlaceOfSupply,
	FieldPlaceOfDelivery,
	FieldInvoiceDetails,
	FieldAmountInWords,
	FieldTotalTax,
	FieldTotalAmount,
	FieldReverseCharge,
}

// LineItemColumns is the canonical 10-column line-item header.
var LineItemColumns = []string{
	"Sl.No",
	"Description",
	"UnitPrice",
	"Discount",
	"Qty",
	"NetAmount",
	"TaxRate",
	"TaxType",
	"TaxAmount",
	"TotalAmount",
}
