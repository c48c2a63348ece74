package usecase

import (
	"math"
	"strings"

	"github.com/jipbab-note/backend/internal/domain"
)

// minMatchLength guards the substring equivalence: single-syllable names
// would otherwise match almost anything.
const minMatchLength = 2

// Matcher computes how well a pantry covers one recipe's ingredients.
// Pure computation; no I/O.
type Matcher struct {
	extractor  *Extractor
	normalizer *Normalizer
}

func NewMatcher() *Matcher {
	return &Matcher{
		extractor:  NewExtractor(),
		normalizer: NewMatchNormalizer(),
	}
}

// Match normalizes and dedupes the pantry names, extracts the recipe's
// ingredient list from its raw declaration, and partitions that list into
// matched and missing. A recipe with no extractable ingredients matches
// nothing (rate 0) rather than failing.
func (m *Matcher) Match(pantryNames []string, rawIngredients string) domain.RecipeIngredientMatch {
	ingredientList := m.extractor.Extract(rawIngredients)

	pantry := make([]string, 0, len(pantryNames))
	seen := make(map[string]bool)
	for _, name := range pantryNames {
		normalized := m.normalizer.Normalize(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		pantry = append(pantry, normalized)
	}

	if len(ingredientList) == 0 {
		return domain.RecipeIngredientMatch{
			IngredientList:     []string{},
			MatchedIngredients: []string{},
			MissingIngredients: []string{},
		}
	}

	matched := make([]string, 0, len(ingredientList))
	missing := make([]string, 0, len(ingredientList))

	for _, ingredient := range ingredientList {
		found := false
		for _, mine := range pantry {
			if sameIngredient(mine, ingredient) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, ingredient)
		} else {
			missing = append(missing, ingredient)
		}
	}

	total := len(ingredientList)
	rate := int(math.Round(float64(len(matched)) / float64(total) * 100))

	return domain.RecipeIngredientMatch{
		IngredientList:         ingredientList,
		MatchRate:              rate,
		MatchedIngredients:     matched,
		MissingIngredients:     missing,
		TotalRecipeIngredients: total,
	}
}

// sameIngredient is the fuzzy equivalence: exact equality, or containment
// either way when both names are long enough to make containment
// meaningful. Length is counted in runes because every Korean syllable
// is three bytes.
func sameIngredient(base, target string) bool {
	if base == "" || target == "" {
		return false
	}
	if base == target {
		return true
	}
	if len([]rune(base)) < minMatchLength || len([]rune(target)) < minMatchLength {
		return false
	}
	return strings.Contains(base, target) || strings.Contains(target, base)
}
