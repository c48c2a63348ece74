package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	bracketPattern    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)
	noisePattern      = regexp.MustCompile(`약간|적당량|조금|기호에 따라|취향껏|선택|필수`)
	unitPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?|[한두세네])\s*(kg|mg|ml|g|l|컵|큰술|작은술|술|스푼|tbsp|tsp|ts|개|장|줄기|봉지|봉|마리|모|쪽|알|팩|톨|한줌|줌|대)`)
	nonWordPattern    = regexp.MustCompile(`[^0-9a-zA-Z가-힣\s]`)
	descriptorPattern = regexp.MustCompile(`(국산|수입|신선한|손질|슬라이스|채썬|깍둑|삶은|데친|볶은|건조|냉동|통조림|해동|무염|저염|유기농|말린|생)\s*`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
	leadingNumber     = regexp.MustCompile(`^\d+\s*`)
	trailingNumber    = regexp.MustCompile(`\s+\d+$`)
)

// normalizeStep is one string→string transform in a pipeline.
type normalizeStep func(string) string

// Normalizer runs an ordered list of transforms over a raw ingredient
// fragment. Two configurations exist: the matching normalizer (pantry
// equivalence testing) and the category normalizer (classification input).
// They share the step shape but carry separately calibrated tables and
// must stay distinct pipelines.
type Normalizer struct {
	steps []normalizeStep
}

// Normalize applies every step in order. Pure; may return "".
func (n *Normalizer) Normalize(value string) string {
	for _, step := range n.steps {
		value = step(value)
	}
	return value
}

// NewMatchNormalizer builds the pipeline used for pantry/recipe
// equivalence: lowercase, strip brackets, "to taste" noise and
// quantity+unit tokens, drop non-word characters, fold aliases, collapse
// whitespace, then shave leftover standalone numbers at both ends.
func NewMatchNormalizer() *Normalizer {
	return &Normalizer{steps: []normalizeStep{
		strings.ToLower,
		stripPattern(bracketPattern),
		stripPattern(noisePattern),
		stripPattern(unitPattern),
		stripPattern(nonWordPattern),
		applyAliases(matchAliasRules),
		collapseWhitespace,
		stripEdgeNumbers,
	}}
}

// NewCategoryNormalizer builds the classification pipeline: lowercase,
// strip brackets, fold category aliases, strip descriptor words
// (origin/freshness/preparation), drop non-word characters, collapse
// whitespace. No unit stripping here; the rule scoring tolerates trailing
// quantities via substring matches.
func NewCategoryNormalizer() *Normalizer {
	return &Normalizer{steps: []normalizeStep{
		strings.ToLower,
		stripPattern(bracketPattern),
		applyAliases(categoryAliasRules),
		stripPattern(descriptorPattern),
		stripPattern(nonWordPattern),
		collapseWhitespace,
	}}
}

func stripPattern(pattern *regexp.Regexp) normalizeStep {
	return func(value string) string {
		return pattern.ReplaceAllString(value, " ")
	}
}

func applyAliases(rules []aliasRule) normalizeStep {
	return func(value string) string {
		for _, rule := range rules {
			value = rule.pattern.ReplaceAllString(value, rule.replacement)
		}
		return value
	}
}

func collapseWhitespace(value string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(value, " "))
}

// stripEdgeNumbers removes a single standalone number token at each end,
// remnants of quantities the unit pattern did not cover ("고구마 2").
func stripEdgeNumbers(value string) string {
	value = leadingNumber.ReplaceAllString(value, "")
	return trailingNumber.ReplaceAllString(value, "")
}
