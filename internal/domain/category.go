package domain

// IngredientCategory is one of the seven fixed pantry categories.
// Values are the Korean labels used by the app and the public API.
type IngredientCategory string

const (
	CategoryVegetable IngredientCategory = "채소"
	CategoryFruit     IngredientCategory = "과일"
	CategoryMeat      IngredientCategory = "육류"
	CategorySeafood   IngredientCategory = "수산물"
	CategoryDairy     IngredientCategory = "유제품"
	CategorySeasoning IngredientCategory = "양념"
	CategoryEtc       IngredientCategory = "기타"
)

// Categories lists every category in enumeration order.
var Categories = []IngredientCategory{
	CategoryVegetable,
	CategoryFruit,
	CategoryMeat,
	CategorySeafood,
	CategoryDairy,
	CategorySeasoning,
	CategoryEtc,
}

// CategoryPriority is the tie-break order for classification: when two
// categories score equally, the one listed earlier wins. Distinct from
// enumeration order.
var CategoryPriority = []IngredientCategory{
	CategorySeasoning,
	CategoryMeat,
	CategorySeafood,
	CategoryDairy,
	CategoryVegetable,
	CategoryFruit,
	CategoryEtc,
}

// ParseCategory maps a query-string value to a category. "전체" (all) and
// unknown values return false.
func ParseCategory(value string) (IngredientCategory, bool) {
	if value == "" || value == "전체" {
		return "", false
	}
	for _, category := range Categories {
		if value == string(category) {
			return category, true
		}
	}
	return "", false
}

// CategoryRule is a single weighted keyword rule for one category.
// ExactOnly rules only score on whole-string equality; they exist for
// short keywords (single syllables) prone to substring false positives.
type CategoryRule struct {
	Keyword   string
	Weight    int
	ExactOnly bool
}
