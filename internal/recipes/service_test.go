package recipes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/events"
	eventsmem "recipebox/internal/events/memory"
	"recipebox/internal/recipes"
	storagemem "recipebox/internal/storage/memory"
	"recipebox/internal/storage/types"
)

func newTestService(t *testing.T) (recipes.Service, <-chan events.Event) {
	t.Helper()
	pub := eventsmem.NewPublisher(64)
	t.Cleanup(func() { pub.Close() })
	ch, cancel := pub.Subscribe()
	t.Cleanup(cancel)
	return recipes.NewService(storagemem.NewRecipeStore(), pub, nil), ch
}

func TestServiceCreateThenGet(t *testing.T) {
	svc, eventCh := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "Pancakes", "Mix and fry.", []string{"flour", "milk"}, "Breakfast", []string{"sweet"})
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, []string{"flour", "milk"}, got.Ingredients)
	assert.Equal(t, "Breakfast", got.Category)
	assert.Equal(t, []string{"sweet"}, got.Tags)
	assert.Equal(t, 0, got.Likes)
	assert.False(t, got.IsFavorite)

	evt := <-eventCh
	assert.Equal(t, events.TypeCreated, evt.Type)
	assert.Equal(t, r.ID, evt.RecipeID)
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "x", nil, "", nil)
	assert.ErrorIs(t, err, recipes.ErrNameRequired)

	_, err = svc.Create(ctx, "x", "", nil, "", nil)
	assert.ErrorIs(t, err, recipes.ErrInstructionsRequired)
}

func TestServiceLikeCountsCalls(t *testing.T) {
	svc, eventCh := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "A", "x", nil, "", nil)
	require.NoError(t, err)
	<-eventCh

	for i := 1; i <= 5; i++ {
		got, err := svc.Like(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Likes)
		evt := <-eventCh
		assert.Equal(t, events.TypeLiked, evt.Type)
	}
}

func TestServiceUnlikeFloor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "A", "x", nil, "", nil)
	require.NoError(t, err)

	got, err := svc.Unlike(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)

	_, err = svc.Like(ctx, r.ID)
	require.NoError(t, err)
	got, err = svc.Unlike(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
}

func TestServiceTrendingTop5(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	likes := map[string]int{"A": 3, "B": 10, "C": 1, "D": 7, "E": 2, "F": 5}
	ids := map[string]string{}
	for name, n := range likes {
		r, err := svc.Create(ctx, name, "x", nil, "", nil)
		require.NoError(t, err)
		ids[name] = r.ID
		for i := 0; i < n; i++ {
			_, err := svc.Like(ctx, r.ID)
			require.NoError(t, err)
		}
	}

	top, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, top, 5)
	names := []string{}
	for _, r := range top {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"B", "D", "F", "A", "E"}, names)
}

func TestServiceDeleteThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "Gone", "x", nil, "", nil)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gone", deleted.Name)

	_, err = svc.Get(ctx, r.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestServiceFavoriteFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "A", "x", nil, "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Favorite(ctx, r.ID))
	favs, err := svc.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	require.NoError(t, svc.Unfavorite(ctx, r.ID))
	favs, err = svc.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)

	assert.ErrorIs(t, svc.Favorite(ctx, "missing"), types.ErrNotFound)
}

func TestServiceNilPublisher(t *testing.T) {
	svc := recipes.NewService(storagemem.NewRecipeStore(), nil, nil)
	ctx := context.Background()

	r, err := svc.Create(ctx, "A", "x", nil, "", nil)
	require.NoError(t, err)
	_, err = svc.Like(ctx, r.ID)
	assert.NoError(t, err)
}

func TestServiceCountAndRandom(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = svc.Random(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = svc.Create(ctx, "A", "x", nil, "", nil)
	require.NoError(t, err)

	n, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	r, err := svc.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", r.Name)
}
