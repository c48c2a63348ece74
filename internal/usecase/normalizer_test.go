package usecase

import "testing"

func TestMatchNormalizer(t *testing.T) {
	n := NewMatchNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name untouched", "돼지고기", "돼지고기"},
		{"digit quantity with unit", "돼지고기 300g", "돼지고기"},
		{"decimal quantity", "우유 1.5l", "우유"},
		{"korean numeral with unit", "다진 마늘 한쪽", "마늘"},
		{"counter unit", "대파 1대", "파"},
		{"noise phrase", "소금 약간", "소금"},
		{"to-taste phrase", "후추 기호에 따라", "후추"},
		{"brackets removed", "감자(중간 크기) 2개", "감자"},
		{"square brackets", "양파[국산] 1개", "양파"},
		{"alias green onion", "쪽파 3줄기", "파"},
		{"alias soy sauce", "진간장 1큰술", "간장"},
		{"alias chili", "청양고추 2개", "고추"},
		{"alias sugar substitute", "설탕 대체 1큰술", "설탕"},
		{"trailing bare number", "고구마 2", "고구마"},
		{"leading bare number", "2 고구마", "고구마"},
		{"symbols stripped", "간장~!", "간장"},
		{"uppercase folded", "1TSP 설탕", "설탕"},
		{"whitespace collapsed", "  두부   1모  ", "두부"},
		{"empty input", "", ""},
		{"only noise", "약간", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Normalization is a fixpoint: running an already-normalized name through
// the pipeline again changes nothing.
func TestMatchNormalizerIdempotent(t *testing.T) {
	n := NewMatchNormalizer()

	inputs := []string{
		"돼지고기 300g",
		"다진 마늘 한쪽",
		"감자(중간 크기) 2개",
		"청양고추 2개",
		"모짜렐라 치즈",
		"",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCategoryNormalizer(t *testing.T) {
	n := NewCategoryNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"descriptors stripped", "국산 신선한 깻잎", "깻잎"},
		{"frozen descriptor", "냉동 새우", "새우"},
		{"minced garlic joins", "다진 마늘", "다진마늘"},
		{"ketchup variant", "케찹", "케첩"},
		{"egg variant", "달걀", "계란"},
		{"olive oil variant", "엑스트라버진 올리브 오일", "올리브오일"},
		{"cooking oil family", "카놀라유", "식용유"},
		{"green onion kept distinct", "대파", "대파"},
		{"brackets removed", "고추 (홍고추)", "고추"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// The matching and classification pipelines are calibrated separately and
// must not collapse into one: the matching normalizer folds 대파 into 파,
// the classification normalizer keeps 대파 so its vegetable rule can hit.
func TestPipelinesStayDistinct(t *testing.T) {
	match := NewMatchNormalizer()
	category := NewCategoryNormalizer()

	if got := match.Normalize("대파"); got != "파" {
		t.Errorf("match pipeline: Normalize(대파) = %q, want 파", got)
	}
	if got := category.Normalize("대파"); got != "대파" {
		t.Errorf("category pipeline: Normalize(대파) = %q, want 대파", got)
	}
}
