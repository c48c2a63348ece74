package usecase

import (
	"regexp"
	"strings"

	"github.com/jipbab-note/backend/internal/domain"
)

// Sauces, fish sauces, dressings, syrups and oils must classify as
// seasoning even when a protein keyword hides inside the name
// (e.g. 멸치액젓 would otherwise score as seafood).
var seasoningOverridePattern = regexp.MustCompile(`액젓|소스|드레싱|시럽|오일|식용유`)

// Classifier assigns one of the seven categories to an ingredient name
// by scoring it against the weighted keyword tables. Deterministic and
// pure; unknown names fall through to 기타.
type Classifier struct {
	normalizer *Normalizer
}

func NewClassifier() *Classifier {
	return &Classifier{normalizer: NewCategoryNormalizer()}
}

// Classify normalizes name through the category pipeline, applies the
// seasoning override, then picks the highest-scoring category. Ties
// between positive scores resolve by domain.CategoryPriority.
func (c *Classifier) Classify(name string) domain.IngredientCategory {
	normalized := c.normalizer.Normalize(name)
	if normalized == "" {
		return domain.CategoryEtc
	}

	if seasoningOverridePattern.MatchString(normalized) {
		return domain.CategorySeasoning
	}

	best := domain.CategoryEtc
	bestScore := 0

	for _, category := range domain.Categories {
		if category == domain.CategoryEtc {
			continue
		}

		score := 0
		for _, rule := range categoryRules[category] {
			score += ruleScore(normalized, rule)
		}

		if score > bestScore {
			bestScore = score
			best = category
			continue
		}
		if score == bestScore && score > 0 && priorityIndex(category) < priorityIndex(best) {
			best = category
		}
	}

	return best
}

// ruleScore grades one rule against a normalized name. Exact matches
// outrank whole-word matches, which outrank bare substring hits; the
// bonuses (+3/+1/+0 over the rule weight) keep a strong exact hit ahead
// of several weak substring hits in a sibling category.
func ruleScore(normalized string, rule domain.CategoryRule) int {
	if normalized == "" || rule.Keyword == "" {
		return 0
	}

	if rule.ExactOnly {
		if normalized == rule.Keyword {
			return rule.Weight + 2
		}
		return 0
	}

	if normalized == rule.Keyword {
		return rule.Weight + 3
	}

	if strings.HasPrefix(normalized, rule.Keyword+" ") ||
		strings.HasSuffix(normalized, " "+rule.Keyword) ||
		strings.Contains(normalized, " "+rule.Keyword+" ") {
		return rule.Weight + 1
	}

	if strings.Contains(normalized, rule.Keyword) {
		return rule.Weight
	}

	return 0
}

func priorityIndex(category domain.IngredientCategory) int {
	for i, candidate := range domain.CategoryPriority {
		if candidate == category {
			return i
		}
	}
	return len(domain.CategoryPriority)
}
