package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recipebox/internal/storage/types"
)

type recipeStore struct {
	coll *mongo.Collection
}

// NewRecipeStore creates a recipe store on the given database.
func NewRecipeStore(db *mongo.Database, collectionName string) types.RecipeStore {
	if collectionName == "" {
		collectionName = "recipes"
	}
	return &recipeStore{
		coll: db.Collection(collectionName),
	}
}

func (s *recipeStore) Create(ctx context.Context, recipe *types.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	recipe.Normalize()
	now := time.Now().UnixMilli()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, recipe)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrExists
	}
	return err
}

func (s *recipeStore) Get(ctx context.Context, id string) (*types.Recipe, error) {
	var recipe types.Recipe
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	recipe.Normalize()
	return &recipe, nil
}

func (s *recipeStore) List(ctx context.Context) ([]*types.Recipe, error) {
	return s.find(ctx, bson.M{}, options.Find())
}

func (s *recipeStore) Search(ctx context.Context, q types.SearchQuery) ([]*types.Recipe, error) {
	return s.find(ctx, makeSearchFilter(q), options.Find())
}

func (s *recipeStore) ByCategory(ctx context.Context, category string) ([]*types.Recipe, error) {
	return s.find(ctx, bson.M{"category": category}, options.Find())
}

func (s *recipeStore) Favorites(ctx context.Context) ([]*types.Recipe, error) {
	return s.find(ctx, bson.M{"is_favorite": true}, options.Find())
}

func (s *recipeStore) Trending(ctx context.Context, limit int) ([]*types.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.M{}, opts)
}

func (s *recipeStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *recipeStore) Random(ctx context.Context) (*types.Recipe, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []*types.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, types.ErrNotFound
	}
	recipes[0].Normalize()
	return recipes[0], nil
}

func (s *recipeStore) Update(ctx context.Context, id string, update types.RecipeUpdate) (*types.Recipe, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": makeUpdateDoc(update)})
}

func (s *recipeStore) ReplaceTags(ctx context.Context, id string, tags []string) (*types.Recipe, error) {
	if tags == nil {
		tags = []string{}
	}
	set := bson.M{"tags": tags, "updated_at": time.Now().UnixMilli()}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (s *recipeStore) SetFavorite(ctx context.Context, id string, favorite bool) error {
	set := bson.M{"is_favorite": favorite, "updated_at": time.Now().UnixMilli()}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *recipeStore) Like(ctx context.Context, id string) (*types.Recipe, error) {
	update := bson.M{
		"$inc": bson.M{"likes": 1},
		"$set": bson.M{"updated_at": time.Now().UnixMilli()},
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (s *recipeStore) Unlike(ctx context.Context, id string) (*types.Recipe, error) {
	update := bson.M{
		"$inc": bson.M{"likes": -1},
		"$set": bson.M{"updated_at": time.Now().UnixMilli()},
	}
	// The likes guard keeps the counter from going below zero. When it does
	// not match, the recipe either does not exist or already has zero likes.
	recipe, err := s.findOneAndUpdate(ctx, bson.M{"_id": id, "likes": bson.M{"$gt": 0}}, update)
	if errors.Is(err, types.ErrNotFound) {
		return s.Get(ctx, id)
	}
	return recipe, err
}

func (s *recipeStore) Delete(ctx context.Context, id string) (*types.Recipe, error) {
	var recipe types.Recipe
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	recipe.Normalize()
	return &recipe, nil
}

func (s *recipeStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_favorite", Value: 1}}},
		{Keys: bson.D{{Key: "likes", Value: -1}}},
	})
	return err
}

func (s *recipeStore) Close(ctx context.Context) error {
	return nil
}

func (s *recipeStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*types.Recipe, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := []*types.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	for _, r := range recipes {
		r.Normalize()
	}
	return recipes, nil
}

func (s *recipeStore) findOneAndUpdate(ctx context.Context, filter bson.M, update bson.M) (*types.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var recipe types.Recipe
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	recipe.Normalize()
	return &recipe, nil
}
