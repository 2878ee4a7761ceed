package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/storage/types"
)

func seedRecipe(t *testing.T, store types.RecipeStore, r *types.Recipe) *types.Recipe {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), r))
	return r
}

func TestRecipeStoreCreateGet(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	r := seedRecipe(t, store, &types.Recipe{
		Name:         "Pancakes",
		Ingredients:  []string{"flour", "milk"},
		Instructions: "Mix and fry.",
		Category:     "Breakfast",
	})
	require.NotEmpty(t, r.ID)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, []string{"flour", "milk"}, got.Ingredients)
	assert.Equal(t, 0, got.Likes)
	assert.False(t, got.IsFavorite)
	assert.NotNil(t, got.Tags)
	assert.NotZero(t, got.CreatedAt)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRecipeStoreCreateDuplicateID(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	seedRecipe(t, store, &types.Recipe{ID: "fixed", Name: "A", Instructions: "a"})
	err := store.Create(ctx, &types.Recipe{ID: "fixed", Name: "B", Instructions: "b"})
	assert.ErrorIs(t, err, types.ErrExists)
}

func TestRecipeStoreSearch(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	seedRecipe(t, store, &types.Recipe{Name: "Pancakes", Instructions: "x", Ingredients: []string{"Flour", "Milk"}, Tags: []string{"Breakfast"}})
	seedRecipe(t, store, &types.Recipe{Name: "Waffles", Instructions: "x", Ingredients: []string{"Flour"}, Tags: []string{"Breakfast"}})

	results, err := store.Search(ctx, types.SearchQuery{Name: "Pan"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pancakes", results[0].Name)

	results, err = store.Search(ctx, types.SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = store.Search(ctx, types.SearchQuery{Name: "pan", Ingredient: "milk"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = store.Search(ctx, types.SearchQuery{Tag: "dinner"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecipeStoreByCategory(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	seedRecipe(t, store, &types.Recipe{Name: "Cake", Instructions: "x", Category: "Dessert"})
	seedRecipe(t, store, &types.Recipe{Name: "Soup", Instructions: "x", Category: "dessert"})

	results, err := store.ByCategory(ctx, "Dessert")
	require.NoError(t, err)
	require.Len(t, results, 1, "category match is exact and case-sensitive")
	assert.Equal(t, "Cake", results[0].Name)

	results, err = store.ByCategory(ctx, "Nope")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecipeStoreFavoritesAndSetFavorite(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	a := seedRecipe(t, store, &types.Recipe{Name: "A", Instructions: "x"})
	seedRecipe(t, store, &types.Recipe{Name: "B", Instructions: "x"})

	require.NoError(t, store.SetFavorite(ctx, a.ID, true))
	require.NoError(t, store.SetFavorite(ctx, a.ID, true)) // idempotent

	favs, err := store.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, a.ID, favs[0].ID)

	require.NoError(t, store.SetFavorite(ctx, a.ID, false))
	favs, err = store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)

	assert.ErrorIs(t, store.SetFavorite(ctx, "missing", true), types.ErrNotFound)
}

func TestRecipeStoreTrending(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	a := seedRecipe(t, store, &types.Recipe{Name: "A", Instructions: "x"})
	b := seedRecipe(t, store, &types.Recipe{Name: "B", Instructions: "x"})
	c := seedRecipe(t, store, &types.Recipe{Name: "C", Instructions: "x"})

	for i := 0; i < 3; i++ {
		_, err := store.Like(ctx, a.ID)
		require.NoError(t, err)
	}
	for i := 0; i < 10; i++ {
		_, err := store.Like(ctx, b.ID)
		require.NoError(t, err)
	}
	_, err := store.Like(ctx, c.ID)
	require.NoError(t, err)

	top, err := store.Trending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, []string{top[0].ID, top[1].ID, top[2].ID})

	top, err = store.Trending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, b.ID, top[0].ID)
}

func TestRecipeStoreCountAndRandom(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	_, err := store.Random(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	seen := map[string]bool{}
	for _, name := range []string{"A", "B", "C"} {
		seedRecipe(t, store, &types.Recipe{Name: name, Instructions: "x"})
	}

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	for i := 0; i < 50; i++ {
		r, err := store.Random(ctx)
		require.NoError(t, err)
		seen[r.Name] = true
	}
	assert.Len(t, seen, 3, "random should eventually return every recipe")
}

func TestRecipeStoreUpdate(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	r := seedRecipe(t, store, &types.Recipe{Name: "Cake", Instructions: "Bake.", Tags: []string{"sweet"}})

	updated, err := store.Update(ctx, r.ID, types.RecipeUpdate{Category: "Dessert"})
	require.NoError(t, err)
	assert.Equal(t, "Cake", updated.Name)
	assert.Equal(t, []string{"sweet"}, updated.Tags)
	assert.Equal(t, "Dessert", updated.Category)

	_, err = store.Update(ctx, "missing", types.RecipeUpdate{Name: "X"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRecipeStoreReplaceTags(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	r := seedRecipe(t, store, &types.Recipe{Name: "Cake", Instructions: "x", Tags: []string{"old"}})

	updated, err := store.ReplaceTags(ctx, r.ID, []string{"new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, updated.Tags)

	updated, err = store.ReplaceTags(ctx, r.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Tags)
}

func TestRecipeStoreLikeUnlike(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	r := seedRecipe(t, store, &types.Recipe{Name: "A", Instructions: "x"})

	for i := 1; i <= 4; i++ {
		got, err := store.Like(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Likes)
	}

	got, err := store.Unlike(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Likes)

	for i := 0; i < 10; i++ {
		got, err = store.Unlike(ctx, r.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, got.Likes, "unlike floors at zero")

	_, err = store.Like(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.Unlike(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRecipeStoreDelete(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	r := seedRecipe(t, store, &types.Recipe{Name: "Gone", Instructions: "x"})

	deleted, err := store.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gone", deleted.Name)

	_, err = store.Get(ctx, r.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = store.Delete(ctx, r.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
