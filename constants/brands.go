package constants

// Brand identifies one of the supported invoice-issuing vendors.
type Brand string

const (
	BrandAmazon    Brand = "amazon"
	BrandFlipkart  Brand = "flipkart"
	BrandZomato    Brand = "zomato"
	BrandBlinkit   Brand = "blinkit"
	BrandInstamart Brand = "instamart"
)

// Brands lists every supported brand in tally order.
var Brands = []Brand{BrandAmazon, BrandFlipkart, BrandZomato, BrandBlinkit, BrandInstamart}

func (b Brand) String() string {
	return string(b)
}
