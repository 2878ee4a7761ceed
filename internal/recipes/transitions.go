// Package recipes holds the catalog domain logic: the pure state transitions
// for a recipe and the service that applies them through a store.
package recipes

import (
	"errors"

	"recipebox/internal/storage/types"
)

var (
	// ErrNameRequired is returned when a recipe is created without a name.
	ErrNameRequired = errors.New("recipe name is required")
	// ErrInstructionsRequired is returned when a recipe is created without
	// instructions.
	ErrInstructionsRequired = errors.New("recipe instructions are required")
)

// New builds a fresh recipe from its content fields. Likes start at zero and
// the favorite flag unset; nil sequences become empty. The ID is assigned by
// the store on insert.
func New(name, instructions string, ingredients []string, category string, tags []string) (*types.Recipe, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if instructions == "" {
		return nil, ErrInstructionsRequired
	}

	r := &types.Recipe{
		Name:         name,
		Instructions: instructions,
		Ingredients:  ingredients,
		Category:     category,
		Tags:         tags,
	}
	r.Normalize()
	return r, nil
}

// ApplyUpdate applies a partial update: each content field replaces the
// stored value only when present and non-empty, uniformly across all fields.
// Absent fields are left unchanged.
func ApplyUpdate(r *types.Recipe, u types.RecipeUpdate) {
	if u.Name != "" {
		r.Name = u.Name
	}
	if len(u.Ingredients) > 0 {
		r.Ingredients = append([]string{}, u.Ingredients...)
	}
	if u.Instructions != "" {
		r.Instructions = u.Instructions
	}
	if u.Category != "" {
		r.Category = u.Category
	}
	if len(u.Tags) > 0 {
		r.Tags = append([]string{}, u.Tags...)
	}
}

// ReplaceTags overwrites the tag sequence. Unlike ApplyUpdate this is a full
// overwrite: no tags supplied means the recipe ends up with none.
func ReplaceTags(r *types.Recipe, tags []string) {
	if tags == nil {
		tags = []string{}
	}
	r.Tags = append([]string{}, tags...)
}

// Like increments the like counter.
func Like(r *types.Recipe) {
	r.Likes++
}

// Unlike decrements the like counter, floored at zero.
func Unlike(r *types.Recipe) {
	if r.Likes > 0 {
		r.Likes--
	}
}

// SetFavorite sets the favorite flag. Idempotent.
func SetFavorite(r *types.Recipe, favorite bool) {
	r.IsFavorite = favorite
}
