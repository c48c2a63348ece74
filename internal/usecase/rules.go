package usecase

import (
	"regexp"

	"github.com/jipbab-note/backend/internal/domain"
)

// The classifier works off declarative keyword tables rather than code
// branches so the rules stay auditable and testable apart from the
// scoring algorithm. Weights were tuned against the MFDS recipe corpus;
// exactOnly marks single-syllable keywords (파, 무, 배, 굴, 게, 김) that
// would otherwise substring-match half the corpus.
var categoryRules = map[domain.IngredientCategory][]domain.CategoryRule{
	domain.CategoryVegetable: {
		{Keyword: "양파", Weight: 4},
		{Keyword: "대파", Weight: 4},
		{Keyword: "파", Weight: 4, ExactOnly: true},
		{Keyword: "감자", Weight: 4},
		{Keyword: "고구마", Weight: 4},
		{Keyword: "당근", Weight: 4},
		{Keyword: "오이", Weight: 4},
		{Keyword: "호박", Weight: 4},
		{Keyword: "애호박", Weight: 4},
		{Keyword: "단호박", Weight: 4},
		{Keyword: "브로콜리", Weight: 4},
		{Keyword: "버섯", Weight: 4},
		{Keyword: "시금치", Weight: 4},
		{Keyword: "배추", Weight: 4},
		{Keyword: "무", Weight: 3, ExactOnly: true},
		{Keyword: "상추", Weight: 4},
		{Keyword: "깻잎", Weight: 4},
		{Keyword: "고추", Weight: 4},
		{Keyword: "콩나물", Weight: 4},
		{Keyword: "양배추", Weight: 4},
		{Keyword: "가지", Weight: 4},
		{Keyword: "부추", Weight: 4},
		{Keyword: "마늘", Weight: 3},
		{Keyword: "토란", Weight: 4},
		{Keyword: "샐러리", Weight: 4},
		{Keyword: "케일", Weight: 4},
		{Keyword: "파프리카", Weight: 4},
		{Keyword: "토마토", Weight: 4},
		{Keyword: "청경채", Weight: 4},
	},
	domain.CategoryFruit: {
		{Keyword: "사과", Weight: 4},
		{Keyword: "배", Weight: 4, ExactOnly: true},
		{Keyword: "포도", Weight: 4},
		{Keyword: "딸기", Weight: 4},
		{Keyword: "바나나", Weight: 4},
		{Keyword: "오렌지", Weight: 4},
		{Keyword: "귤", Weight: 4},
		{Keyword: "레몬", Weight: 4},
		{Keyword: "키위", Weight: 4},
		{Keyword: "복숭아", Weight: 4},
		{Keyword: "망고", Weight: 4},
		{Keyword: "자몽", Weight: 4},
		{Keyword: "체리", Weight: 4},
		{Keyword: "파인애플", Weight: 4},
		{Keyword: "블루베리", Weight: 4},
		{Keyword: "아보카도", Weight: 3},
	},
	domain.CategoryMeat: {
		{Keyword: "소고기", Weight: 5},
		{Keyword: "돼지고기", Weight: 5},
		{Keyword: "닭고기", Weight: 5},
		{Keyword: "오리고기", Weight: 5},
		{Keyword: "양고기", Weight: 5},
		{Keyword: "목살", Weight: 4},
		{Keyword: "삼겹살", Weight: 4},
		{Keyword: "갈비", Weight: 4},
		{Keyword: "베이컨", Weight: 4},
		{Keyword: "햄", Weight: 4},
		{Keyword: "다짐육", Weight: 4},
		{Keyword: "불고기", Weight: 4},
		{Keyword: "차돌", Weight: 4},
		{Keyword: "소시지", Weight: 4},
		{Keyword: "닭가슴살", Weight: 4},
		{Keyword: "우삼겹", Weight: 4},
	},
	domain.CategorySeafood: {
		{Keyword: "고등어", Weight: 5},
		{Keyword: "연어", Weight: 5},
		{Keyword: "참치", Weight: 4},
		{Keyword: "오징어", Weight: 5},
		{Keyword: "문어", Weight: 5},
		{Keyword: "새우", Weight: 5},
		{Keyword: "조개", Weight: 5},
		{Keyword: "굴", Weight: 4, ExactOnly: true},
		{Keyword: "멸치", Weight: 5},
		{Keyword: "게", Weight: 4, ExactOnly: true},
		{Keyword: "미역", Weight: 5},
		{Keyword: "김", Weight: 4, ExactOnly: true},
		{Keyword: "다시마", Weight: 5},
		{Keyword: "어묵", Weight: 4},
		{Keyword: "전복", Weight: 5},
		{Keyword: "바지락", Weight: 5},
		{Keyword: "낙지", Weight: 5},
		{Keyword: "꽁치", Weight: 5},
	},
	domain.CategoryDairy: {
		{Keyword: "우유", Weight: 5},
		{Keyword: "치즈", Weight: 5},
		{Keyword: "버터", Weight: 5},
		{Keyword: "요거트", Weight: 5},
		{Keyword: "요구르트", Weight: 5},
		{Keyword: "생크림", Weight: 5},
		{Keyword: "연유", Weight: 5},
		{Keyword: "계란", Weight: 4},
		{Keyword: "달걀", Weight: 4},
		{Keyword: "두유", Weight: 3},
		{Keyword: "두부", Weight: 3},
		{Keyword: "크림치즈", Weight: 5},
		{Keyword: "모짜렐라", Weight: 5},
		{Keyword: "파마산", Weight: 5},
	},
	domain.CategorySeasoning: {
		{Keyword: "간장", Weight: 6},
		{Keyword: "고추장", Weight: 6},
		{Keyword: "된장", Weight: 6},
		{Keyword: "쌈장", Weight: 6},
		{Keyword: "소금", Weight: 5},
		{Keyword: "설탕", Weight: 5},
		{Keyword: "식초", Weight: 5},
		{Keyword: "참기름", Weight: 6},
		{Keyword: "들기름", Weight: 6},
		{Keyword: "후추", Weight: 5},
		{Keyword: "고춧가루", Weight: 6},
		{Keyword: "다진마늘", Weight: 6},
		{Keyword: "케첩", Weight: 6},
		{Keyword: "마요네즈", Weight: 6},
		{Keyword: "올리고당", Weight: 6},
		{Keyword: "물엿", Weight: 6},
		{Keyword: "액젓", Weight: 6},
		{Keyword: "굴소스", Weight: 6},
		{Keyword: "식용유", Weight: 6},
		{Keyword: "올리브오일", Weight: 6},
		{Keyword: "카레가루", Weight: 6},
		{Keyword: "소스", Weight: 4},
	},
	domain.CategoryEtc: {},
}

type aliasRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// matchAliasRules canonicalize spelling/variant forms for pantry matching.
// Applied in order; later rules may act on earlier rules' output.
var matchAliasRules = []aliasRule{
	{regexp.MustCompile(`다진\s*마늘`), "마늘"},
	{regexp.MustCompile(`다진\s*파`), "파"},
	{regexp.MustCompile(`대파`), "파"},
	{regexp.MustCompile(`쪽파`), "파"},
	{regexp.MustCompile(`(청양|홍)\s*고추`), "고추"},
	{regexp.MustCompile(`(진|국|양조)\s*간장`), "간장"},
	{regexp.MustCompile(`설탕\s*대체`), "설탕"},
}

// categoryAliasRules canonicalize variants toward the keyword forms the
// rule tables use. This table has drifted apart from matchAliasRules on
// purpose (e.g. 대파 stays 대파 here so the vegetable rule can hit it);
// the two pipelines are calibrated independently.
var categoryAliasRules = []aliasRule{
	{regexp.MustCompile(`다진\s*마늘`), "다진마늘"},
	{regexp.MustCompile(`(청양|홍)\s*고추`), "고추"},
	{regexp.MustCompile(`(진|국|양조)\s*간장`), "간장"},
	{regexp.MustCompile(`케찹`), "케첩"},
	{regexp.MustCompile(`달걀`), "계란"},
	{regexp.MustCompile(`(엑스트라버진|버진)\s*올리브\s*오일`), "올리브오일"},
	{regexp.MustCompile(`(카놀라|포도씨|해바라기)\s*유`), "식용유"},
}
