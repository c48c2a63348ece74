package domain

import "time"

// Recipe is one recipe summary as served by the list endpoint.
type Recipe struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Method         string `json:"method"`
	Calories       string `json:"calories"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	RawIngredients string `json:"ingredients"`
	HashTag        string `json:"hashTag"`
}

// RecipeStep is one ordered cooking instruction.
type RecipeStep struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// RecipeDetail is a full recipe with parsed ingredient display list and
// ordered cooking steps.
type RecipeDetail struct {
	Recipe
	IngredientList []string     `json:"ingredientList"`
	Steps          []RecipeStep `json:"steps"`
	HashTags       []string     `json:"hashTags"`
}

// RecipeChunk is one page of upstream recipe rows. TotalCount is the
// total the upstream reported for the query, or 0 when it did not say.
// Code and Message carry the upstream RESULT block so the list endpoint
// can pass them through; both may be empty when the upstream omits it.
type RecipeChunk struct {
	Recipes    []Recipe
	TotalCount int
	Code       string
	Message    string
}

// RecipeFilter narrows an upstream recipe fetch. Zero value means no filter.
type RecipeFilter struct {
	Query    string
	Category string
}

// RecipeIngredientMatch is the result of matching one recipe's ingredients
// against a pantry. Recomputed per request, never persisted.
// MatchedIngredients and MissingIngredients partition IngredientList.
type RecipeIngredientMatch struct {
	IngredientList         []string `json:"ingredientList"`
	MatchRate              int      `json:"matchRate"`
	MatchedIngredients     []string `json:"matchedIngredients"`
	MissingIngredients     []string `json:"missingIngredients"`
	TotalRecipeIngredients int      `json:"totalRecipeIngredients"`
}

// FavoriteRecipe is one favorited recipe summary kept in the device-scoped
// record store.
type FavoriteRecipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	SavedAt      time.Time `json:"savedAt"`
}

// CommunityRecipe is a user-submitted recipe on the community board.
// IDs are UUIDs, which is how the detail endpoint tells community recipes
// apart from upstream sequence ids.
type CommunityRecipe struct {
	ID           string       `json:"id"`
	DeviceID     string       `json:"deviceId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	Ingredients  []string     `json:"ingredients"`
	Steps        []RecipeStep `json:"steps"`
	CreatedAt    time.Time    `json:"createdAt"`
}
