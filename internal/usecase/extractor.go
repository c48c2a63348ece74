package usecase

import (
	"regexp"
	"strings"
)

var (
	splitPattern  = regexp.MustCompile(`[\n,;|/]+`)
	bulletPattern = regexp.MustCompile(`^[-•·*]\s*`)
)

// Extractor splits one recipe's raw ingredient declaration into
// normalized ingredient name tokens. Malformed input degrades to fewer
// or zero tokens, never an error.
type Extractor struct {
	normalizer *Normalizer
}

func NewExtractor() *Extractor {
	return &Extractor{normalizer: NewMatchNormalizer()}
}

// Extract splits on the delimiter set, strips bullet markers, drops
// section labels ("주재료: ..." keeps only what follows the last colon),
// normalizes each fragment, drops empties and dedupes preserving
// first-seen order.
func (e *Extractor) Extract(raw string) []string {
	if raw == "" {
		return nil
	}

	seen := make(map[string]bool)
	var names []string

	for _, fragment := range splitPattern.Split(raw, -1) {
		fragment = strings.TrimSpace(bulletPattern.ReplaceAllString(fragment, " "))
		if colon := strings.LastIndex(fragment, ":"); colon != -1 {
			fragment = fragment[colon+1:]
		}

		name := e.normalizer.Normalize(fragment)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names
}
