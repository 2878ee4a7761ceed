// Package memory implements the store interfaces in process memory. It backs
// tests and the embedded deployment mode.
package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/recipes"
	"recipebox/internal/storage/types"
)

type recipeStore struct {
	mu      sync.RWMutex
	records map[string]*types.Recipe
}

// NewRecipeStore creates an empty in-memory recipe store.
func NewRecipeStore() types.RecipeStore {
	return &recipeStore{records: make(map[string]*types.Recipe)}
}

func (s *recipeStore) Create(ctx context.Context, recipe *types.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	} else if _, ok := s.records[recipe.ID]; ok {
		return types.ErrExists
	}
	recipe.Normalize()
	now := time.Now().UnixMilli()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	s.records[recipe.ID] = recipe.Clone()
	return nil
}

func (s *recipeStore) Get(ctx context.Context, id string) (*types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *recipeStore) List(ctx context.Context) ([]*types.Recipe, error) {
	return s.filter(func(*types.Recipe) bool { return true }), nil
}

func (s *recipeStore) Search(ctx context.Context, q types.SearchQuery) ([]*types.Recipe, error) {
	return s.filter(q.Matches), nil
}

func (s *recipeStore) ByCategory(ctx context.Context, category string) ([]*types.Recipe, error) {
	return s.filter(func(r *types.Recipe) bool { return r.Category == category }), nil
}

func (s *recipeStore) Favorites(ctx context.Context) ([]*types.Recipe, error) {
	return s.filter(func(r *types.Recipe) bool { return r.IsFavorite }), nil
}

func (s *recipeStore) Trending(ctx context.Context, limit int) ([]*types.Recipe, error) {
	all := s.filter(func(*types.Recipe) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].Likes > all[j].Likes })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *recipeStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *recipeStore) Random(ctx context.Context) (*types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, types.ErrNotFound
	}
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return s.records[ids[rand.IntN(len(ids))]].Clone(), nil
}

func (s *recipeStore) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error) {
	return s.mutate(id, func(r *types.Recipe) { recipes.ApplyUpdate(r, update) })
}

func (s *recipeStore) ReplaceTags(ctx context.Context, id string, tags []string) (*types.Recipe, error) {
	return s.mutate(id, func(r *types.Recipe) { recipes.ReplaceTags(r, tags) })
}

func (s *recipeStore) SetFavorite(ctx context.Context, id string, favorite bool) error {
	_, err := s.mutate(id, func(r *types.Recipe) { recipes.SetFavorite(r, favorite) })
	return err
}

func (s *recipeStore) Like(ctx context.Context, id string) (*types.Recipe, error) {
	return s.mutate(id, func(r *types.Recipe) { recipes.Like(r) })
}

func (s *recipeStore) Unlike(ctx context.Context, id string) (*types.Recipe, error) {
	return s.mutate(id, func(r *types.Recipe) { recipes.Unlike(r) })
}

func (s *recipeStore) Delete(ctx context.Context, id string) (*types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	delete(s.records, id)
	return r, nil
}

func (s *recipeStore) EnsureIndexes(ctx context.Context) error { return nil }

func (s *recipeStore) Close(ctx context.Context) error { return nil }

func (s *recipeStore) filter(keep func(*types.Recipe) bool) []*types.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*types.Recipe{}
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	// Stable output order for callers and tests.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out
}

func (s *recipeStore) mutate(id string, apply func(*types.Recipe)) (*types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	apply(r)
	r.UpdatedAt = time.Now().UnixMilli()
	return r.Clone(), nil
}
