package domain

import "regexp"

// Product source discriminators. A stub result is a successful response:
// the client falls back to manual entry while keeping the scanned code.
const (
	ProductSourceOpenFoodFacts = "openfoodfacts"
	ProductSourceStub          = "stub"
)

// Product is the outcome of a barcode lookup against the product provider.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Source   string `json:"source"`
}

var (
	foodBarcodePattern = regexp.MustCompile(`^\d{8,14}$`)
	nonDigitPattern    = regexp.MustCompile(`[^\d]`)
)

// NormalizeBarcode strips every non-digit character. Returns "" when
// nothing is left.
func NormalizeBarcode(value string) string {
	return nonDigitPattern.ReplaceAllString(value, "")
}

// IsValidFoodBarcode reports whether value is an 8-14 digit barcode
// (EAN-8/13, UPC-A/E and friends).
func IsValidFoodBarcode(value string) bool {
	return foodBarcodePattern.MatchString(value)
}
