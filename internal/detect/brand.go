// Package detect classifies a document into one of the known brands from
// its full extracted text.
package detect

import (
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

// Detect classifies lowercased full-document text. Rules are ordered, first
// match wins: Blinkit invoices are issued under the "Zomato Hyperpure"
// legal entity and must be checked before the generic Zomato and Swiggy
// matches.
func Detect(textLower string) (constants.Brand, bool) {
	has := func(s string) bool { return strings.Contains(textLower, s) }

	switch {
	case has("blinkit") || has("zomato hyperpure"):
		return constants.BrandBlinkit, true
	case has("flipkart") || has("shopler estore"):
		return constants.BrandFlipkart, true
	case has("amazon"):
		return constants.BrandAmazon, true
	case has("instamart") || has("b2c") || (has("swiggy") && has("invoice")):
		return constants.BrandInstamart, true
	case (has("zomato") || has("ethernal")) && has("restaurant"):
		return constants.BrandZomato, true
	default:
		return "", false
	}
}
