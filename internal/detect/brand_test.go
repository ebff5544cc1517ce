package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		brand constants.Brand
		ok    bool
	}{
		{
			name:  "amazon keyword",
			text:  "tax invoice sold by amazon seller services",
			brand: constants.BrandAmazon,
			ok:    true,
		},
		{
			name:  "flipkart keyword",
			text:  "tax invoice flipkart internet private limited",
			brand: constants.BrandFlipkart,
			ok:    true,
		},
		{
			name:  "flipkart seller alias",
			text:  "sold by shopler estore, registered address",
			brand: constants.BrandFlipkart,
			ok:    true,
		},
		{
			name:  "zomato needs restaurant context",
			text:  "zomato limited tax invoice for restaurant services",
			brand: constants.BrandZomato,
			ok:    true,
		},
		{
			name:  "zomato restaurant partner alias",
			text:  "ethernal foods restaurant order summary",
			brand: constants.BrandZomato,
			ok:    true,
		},
		{
			name:  "blinkit keyword",
			text:  "blinkit order delivered in 10 minutes",
			brand: constants.BrandBlinkit,
			ok:    true,
		},
		{
			name:  "instamart keyword",
			text:  "swiggy instamart order details",
			brand: constants.BrandInstamart,
			ok:    true,
		},
		{
			name:  "instamart b2c alias",
			text:  "b2c tax invoice for your order",
			brand: constants.BrandInstamart,
			ok:    true,
		},
		{
			name:  "swiggy alone without invoice is unknown",
			text:  "swiggy order summary",
			brand: "",
			ok:    false,
		},
		{
			name:  "swiggy with invoice",
			text:  "swiggy tax invoice no. abc",
			brand: constants.BrandInstamart,
			ok:    true,
		},
		{
			name:  "zomato without restaurant is unknown",
			text:  "zomato gift card statement",
			brand: "",
			ok:    false,
		},
		{
			name:  "unknown vendor",
			text:  "some random utility bill",
			brand: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, ok := Detect(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.brand, brand)
		})
	}
}

// Hyperpure invoices mention both "zomato" and "restaurant" text, so the
// Blinkit rule has to win before the Zomato rule is consulted.
func TestDetect_HyperpureBeatsZomato(t *testing.T) {
	text := "zomato hyperpure private limited supplying restaurant partners"
	brand, ok := Detect(text)
	assert.True(t, ok)
	assert.Equal(t, constants.BrandBlinkit, brand)
}
