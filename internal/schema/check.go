package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the structural contract every validated record must
// satisfy: all 22 fields present, strings as strings, totals as numbers.
const recordSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "invoice_type":        {"type": "string"},
    "invoice_number":      {"type": "string"},
    "invoice_date":        {"type": "string"},
    "order_number":        {"type": "string"},
    "order_date":          {"type": "string"},
    "seller_name":         {"type": "string"},
    "seller_address":      {"type": "string"},
    "seller_info":         {"type": "string"},
    "seller_gst":          {"type": "string"},
    "seller_pan":          {"type": "string"},
    "fssai_license":       {"type": "string"},
    "billing_address":     {"type": "string"},
    "shipping_address":    {"type": "string"},
    "billing_state_code":  {"type": "string"},
    "shipping_state_code": {"type": "string"},
    "place_of_supply":     {"type": "string"},
    "place_of_delivery":   {"type": "string"},
    "invoice_details":     {"type": "string"},
    "amount_in_words":     {"type": "string"},
    "total_tax":           {"type": "number"},
    "total_amount":        {"type": "number"},
    "reverse_charge":      {"type": "string"}
  },
  "required": [
    "invoice_type", "invoice_number", "invoice_date", "order_number",
    "order_date", "seller_name", "seller_address", "seller_info",
    "seller_gst", "seller_pan", "fssai_license", "billing_address",
    "shipping_address", "billing_state_code", "shipping_state_code",
    "place_of_supply", "place_of_delivery", "invoice_details",
    "amount_in_words", "total_tax", "total_amount", "reverse_charge"
  ]
}`

var compiledRecordSchema = jsonschema.MustCompileString("invoice-record.schema.json", recordSchema)

// CheckRecord validates the marshalled record against the compiled JSON
// schema. Validate's coercion should make this unfailable; the pipeline
// treats a violation as a log-worthy post-condition breach, never as a
// failure path.
func CheckRecord(rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := compiledRecordSchema.Validate(doc); err != nil {
		return fmt.Errorf("record schema: %w", err)
	}
	return nil
}
