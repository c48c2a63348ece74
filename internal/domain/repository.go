package domain

import "context"

// RecipeSource is the upstream recipe provider (MFDS COOKRCP01 OpenAPI).
// Start and end are 1-based record positions, inclusive on both ends.
type RecipeSource interface {
	FetchRecipes(ctx context.Context, start, end int, filter RecipeFilter) (*RecipeChunk, error)
	FetchRecipeBySeq(ctx context.Context, seq string) (*RecipeDetail, error)
}

// ProductSource is the barcode product provider.
// Returns ErrProductNotFound when the provider has no usable entry.
type ProductSource interface {
	Lookup(ctx context.Context, barcode string) (*Product, error)
}

// RecordStore persists small JSON documents under collection/key pairs.
// It is the interface to the out-of-scope storage backend; Get unmarshals
// into out and returns ErrRecordNotFound for missing keys.
type RecordStore interface {
	Get(ctx context.Context, collection, key string, out interface{}) error
	Put(ctx context.Context, collection, key string, value interface{}) error
	Delete(ctx context.Context, collection, key string) error
}
