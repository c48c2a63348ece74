package mfds

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jipbab-note/backend/internal/domain"
)

const (
	maxManualSteps = 20

	fallbackName     = "이름 없음"
	fallbackCategory = "기타"
	fallbackMethod   = "정보 없음"
	fallbackCalories = "-"
)

var (
	displaySplitPattern = regexp.MustCompile(`[\n,;|/]+`)
	bulletPrefixPattern = regexp.MustCompile(`^[-•·*]\s*`)
	hashTagSplitPattern = regexp.MustCompile(`[\s,]+`)
)

// fallbackSteps stands in when a recipe row carries no MANUAL fields at
// all, which happens on older corpus entries.
var fallbackSteps = []domain.RecipeStep{
	{Index: 1, Description: "재료를 깨끗하게 손질하고 필요한 양을 준비합니다."},
	{Index: 2, Description: "조리법에 맞춰 가열하고, 중간에 간을 맞춰가며 조리합니다."},
	{Index: 3, Description: "불을 끄고 플레이팅한 뒤, 기호에 맞게 마무리합니다."},
}

func rowToRecipe(row recipeRow) domain.Recipe {
	return domain.Recipe{
		ID:             strings.TrimSpace(row["RCP_SEQ"]),
		Name:           textOr(row["RCP_NM"], fallbackName),
		Category:       textOr(row["RCP_PAT2"], fallbackCategory),
		Method:         textOr(row["RCP_WAY2"], fallbackMethod),
		Calories:       textOr(row["INFO_ENG"], fallbackCalories),
		ThumbnailURL:   normalizeImageURL(firstNonEmpty(row["ATT_FILE_NO_MK"], row["ATT_FILE_NO_MAIN"])),
		RawIngredients: strings.TrimSpace(row["RCP_PARTS_DTLS"]),
		HashTag:        strings.TrimSpace(row["HASH_TAG"]),
	}
}

func rowToRecipeDetail(row recipeRow) *domain.RecipeDetail {
	recipe := rowToRecipe(row)
	return &domain.RecipeDetail{
		Recipe:         recipe,
		IngredientList: parseDisplayIngredients(recipe.RawIngredients),
		Steps:          parseSteps(row),
		HashTags:       parseHashTags(recipe.HashTag),
	}
}

// parseDisplayIngredients splits the raw declaration into display
// fragments. Unlike the matching pipeline it keeps quantities and units;
// this list is shown to people, not compared.
func parseDisplayIngredients(raw string) []string {
	if raw == "" {
		return []string{}
	}

	fragments := displaySplitPattern.Split(raw, -1)
	items := make([]string, 0, len(fragments))
	seen := make(map[string]bool)

	for _, fragment := range fragments {
		item := strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(strings.TrimSpace(fragment), ""))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items
}

// parseSteps collects MANUAL01..MANUAL20 in order, skipping blanks, and
// pairs each with its MANUAL_IMG counterpart.
func parseSteps(row recipeRow) []domain.RecipeStep {
	steps := make([]domain.RecipeStep, 0, maxManualSteps)

	for i := 1; i <= maxManualSteps; i++ {
		description := strings.TrimSpace(row[fmt.Sprintf("MANUAL%02d", i)])
		if description == "" {
			continue
		}
		steps = append(steps, domain.RecipeStep{
			Index:       i,
			Description: description,
			ImageURL:    normalizeImageURL(row[fmt.Sprintf("MANUAL_IMG%02d", i)]),
		})
	}

	if len(steps) == 0 {
		return fallbackSteps
	}
	return steps
}

func parseHashTags(raw string) []string {
	if raw == "" {
		return []string{}
	}

	tags := make([]string, 0, 4)
	for _, tag := range hashTagSplitPattern.Split(raw, -1) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}
	return tags
}

// normalizeImageURL upgrades the plain-http image hosts the corpus
// still references so clients on HTTPS pages can load them.
func normalizeImageURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "http://") {
		return "https://" + strings.TrimPrefix(trimmed, "http://")
	}
	return trimmed
}

func textOr(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
