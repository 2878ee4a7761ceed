package recipes

import (
	"context"
	"log/slog"
	"time"

	"recipebox/internal/events"
	"recipebox/internal/storage/types"
)

// Service is the catalog API consumed by the REST gateway. Every operation
// performs at most one store round trip; there are no retries and no
// cross-request ordering guarantees.
type Service interface {
	Create(ctx context.Context, name, instructions string, ingredients []string, category string, tags []string) (*types.Recipe, error)
	Get(ctx context.Context, id string) (*types.Recipe, error)
	List(ctx context.Context) ([]*types.Recipe, error)
	Search(ctx context.Context, q types.SearchQuery) ([]*types.Recipe, error)
	ByCategory(ctx context.Context, category string) ([]*types.Recipe, error)
	Favorites(ctx context.Context) ([]*types.Recipe, error)
	Trending(ctx context.Context) ([]*types.Recipe, error)
	Count(ctx context.Context) (int64, error)
	Random(ctx context.Context) (*types.Recipe, error)
	Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error)
	ReplaceTags(ctx context.Context, id string, tags []string) (*types.Recipe, error)
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (*types.Recipe, error)
	Unlike(ctx context.Context, id string) (*types.Recipe, error)
	Delete(ctx context.Context, id string) (*types.Recipe, error)
}

// TrendingLimit is the number of recipes the trending view returns.
const TrendingLimit = 5

type service struct {
	store     types.RecipeStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates the catalog service. The publisher may be nil, in which
// case no events are emitted.
func NewService(store types.RecipeStore, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "catalog"),
	}
}

func (s *service) publish(ctx context.Context, t events.Type, recipeID string) {
	if s.publisher == nil {
		return
	}
	evt := events.Event{Type: t, RecipeID: recipeID, At: time.Now().UnixMilli()}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish event", "type", t, "recipe_id", recipeID, "error", err)
	}
}

func (s *service) Create(ctx context.Context, name, instructions string, ingredients []string, category string, tags []string) (*types.Recipe, error) {
	recipe, err := New(name, instructions, ingredients, category, tags)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, recipe); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeCreated, recipe.ID)
	return recipe, nil
}

func (s *service) Get(ctx context.Context, id string) (*types.Recipe, error) {
	return s.store.Get(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*types.Recipe, error) {
	return s.store.List(ctx)
}

func (s *service) Search(ctx context.Context, q types.SearchQuery) ([]*types.Recipe, error) {
	return s.store.Search(ctx, q)
}

func (s *service) ByCategory(ctx context.Context, category string) ([]*types.Recipe, error) {
	return s.store.ByCategory(ctx, category)
}

func (s *service) Favorites(ctx context.Context) ([]*types.Recipe, error) {
	return s.store.Favorites(ctx)
}

func (s *service) Trending(ctx context.Context) ([]*types.Recipe, error) {
	return s.store.Trending(ctx, TrendingLimit)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

func (s *service) Random(ctx context.Context) (*types.Recipe, error) {
	return s.store.Random(ctx)
}

func (s *service) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error) {
	recipe, err := s.store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeUpdated, id)
	return recipe, nil
}

func (s *service) ReplaceTags(ctx context.Context, id string, tags []string) (*types.Recipe, error) {
	recipe, err := s.store.ReplaceTags(ctx, id, tags)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeTagsReplaced, id)
	return recipe, nil
}

func (s *service) Favorite(ctx context.Context, id string) error {
	if err := s.store.SetFavorite(ctx, id, true); err != nil {
		return err
	}
	s.publish(ctx, events.TypeFavorited, id)
	return nil
}

func (s *service) Unfavorite(ctx context.Context, id string) error {
	if err := s.store.SetFavorite(ctx, id, false); err != nil {
		return err
	}
	s.publish(ctx, events.TypeUnfavorited, id)
	return nil
}

func (s *service) Like(ctx context.Context, id string) (*types.Recipe, error) {
	recipe, err := s.store.Like(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeLiked, id)
	return recipe, nil
}

func (s *service) Unlike(ctx context.Context, id string) (*types.Recipe, error) {
	recipe, err := s.store.Unlike(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeUnliked, id)
	return recipe, nil
}

func (s *service) Delete(ctx context.Context, id string) (*types.Recipe, error) {
	recipe, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeDeleted, id)
	return recipe, nil
}
