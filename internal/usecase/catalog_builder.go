package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/jipbab-note/backend/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatalogBuilderConfig bounds the upstream scan. Zero fields fall back to
// the defaults below.
type CatalogBuilderConfig struct {
	ChunkSize     int // records per upstream call
	MaxScan       int // hard ceiling on scanned records
	MinNameLength int // shorter names are noise fragments
	MaxNameLength int // longer names are mis-split sentences
}

const (
	defaultChunkSize     = 200
	defaultMaxScan       = 1200
	defaultMinNameLength = 2
	defaultMaxNameLength = 24
)

// CatalogBuilder harvests ingredient names from a bounded, strictly
// sequential scan of the upstream recipe corpus and produces an immutable
// catalog snapshot. It never returns a partial catalog: any upstream
// failure fails the whole build, and serving stale data on failure is the
// cache's job.
type CatalogBuilder struct {
	source     domain.RecipeSource
	extractor  *Extractor
	classifier *Classifier
	collator   *collate.Collator
	config     CatalogBuilderConfig
	logger     *zap.Logger
}

func NewCatalogBuilder(source domain.RecipeSource, config CatalogBuilderConfig, logger *zap.Logger) *CatalogBuilder {
	if config.ChunkSize <= 0 {
		config.ChunkSize = defaultChunkSize
	}
	if config.MaxScan <= 0 {
		config.MaxScan = defaultMaxScan
	}
	if config.MinNameLength <= 0 {
		config.MinNameLength = defaultMinNameLength
	}
	if config.MaxNameLength <= 0 {
		config.MaxNameLength = defaultMaxNameLength
	}

	return &CatalogBuilder{
		source:     source,
		extractor:  NewExtractor(),
		classifier: NewClassifier(),
		collator:   collate.New(language.Korean),
		config:     config,
		logger:     logger,
	}
}

// Build pages through the upstream in ascending order, folding each
// chunk's ingredient names into the category sets. The scan target
// shrinks to the upstream-reported total so a small dataset is not
// over-scanned; an empty or short chunk ends the scan early.
func (b *CatalogBuilder) Build(ctx context.Context) (*domain.IngredientCatalog, error) {
	allSet := make(map[string]bool)
	categorySets := make(map[domain.IngredientCategory]map[string]bool, len(domain.Categories))
	for _, category := range domain.Categories {
		categorySets[category] = make(map[string]bool)
	}

	maxPages := (b.config.MaxScan + b.config.ChunkSize - 1) / b.config.ChunkSize
	scanned := 0
	target := b.config.MaxScan

	for page := 1; page <= maxPages && scanned < target; page++ {
		start := (page-1)*b.config.ChunkSize + 1
		end := start + b.config.ChunkSize - 1

		chunk, err := b.source.FetchRecipes(ctx, start, end, domain.RecipeFilter{})
		if err != nil {
			return nil, fmt.Errorf("catalog scan page %d: %w", page, err)
		}

		if chunk.TotalCount > 0 && chunk.TotalCount < target {
			target = chunk.TotalCount
		}

		if len(chunk.Recipes) == 0 {
			break
		}

		for _, recipe := range chunk.Recipes {
			for _, name := range b.extractor.Extract(recipe.RawIngredients) {
				length := utf8.RuneCountInString(name)
				if length < b.config.MinNameLength || length > b.config.MaxNameLength {
					continue
				}
				allSet[name] = true
				categorySets[b.classifier.Classify(name)][name] = true
			}
		}

		scanned += len(chunk.Recipes)

		if len(chunk.Recipes) < b.config.ChunkSize {
			break
		}
	}

	byCategory := make(map[domain.IngredientCategory][]string, len(domain.Categories))
	for _, category := range domain.Categories {
		byCategory[category] = b.sortedNames(categorySets[category])
	}

	catalog := &domain.IngredientCatalog{
		BuiltAt:        time.Now(),
		ScannedRecipes: scanned,
		All:            b.sortedNames(allSet),
		ByCategory:     byCategory,
	}

	b.logger.Info("ingredient catalog built",
		zap.Int("scanned_recipes", catalog.ScannedRecipes),
		zap.Int("ingredient_count", len(catalog.All)),
	)

	return catalog, nil
}

// sortedNames orders a name set with Korean collation so the suggestion
// lists page in dictionary order.
func (b *CatalogBuilder) sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return b.collator.CompareString(names[i], names[j]) < 0
	})
	return names
}
