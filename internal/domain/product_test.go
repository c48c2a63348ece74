package domain

import "testing"

func TestNormalizeBarcode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain digits", "8801234567890", "8801234567890"},
		{"spaces and dashes", " 880-1234 567890 ", "8801234567890"},
		{"letters stripped", "EAN8801111", "8801111"},
		{"empty", "", ""},
		{"only junk", "abc- ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeBarcode(tt.input); got != tt.want {
				t.Errorf("NormalizeBarcode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidFoodBarcode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ean-13", "8801234567890", true},
		{"ean-8", "88012345", true},
		{"fourteen digits", "12345678901234", true},
		{"too short", "1234567", false},
		{"too long", "123456789012345", false},
		{"non-digit", "88012345a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidFoodBarcode(tt.input); got != tt.want {
				t.Errorf("IsValidFoodBarcode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	if _, ok := ParseCategory("전체"); ok {
		t.Error(`ParseCategory("전체") should report no specific category`)
	}
	if _, ok := ParseCategory("디저트"); ok {
		t.Error("recipe categories are not ingredient categories")
	}
	got, ok := ParseCategory("육류")
	if !ok || got != CategoryMeat {
		t.Errorf(`ParseCategory("육류") = %v, %v, want CategoryMeat, true`, got, ok)
	}
}
