package domain

import "time"

// IngredientCatalog is an immutable snapshot of ingredient names harvested
// from a bounded scan of the upstream recipe corpus. It powers the
// suggestion/autocomplete API. Snapshots are replaced wholesale, never
// mutated; an old snapshot may still be served while a new one builds.
type IngredientCatalog struct {
	BuiltAt        time.Time
	ScannedRecipes int
	All            []string
	ByCategory     map[IngredientCategory][]string
}

// Names returns the name list for one category, or every name when
// category is empty.
func (c *IngredientCatalog) Names(category IngredientCategory) []string {
	if category == "" {
		return c.All
	}
	return c.ByCategory[category]
}
