package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recipebox/internal/storage/types"
)

type userStore struct {
	coll *mongo.Collection
}

// NewUserStore creates a user store on the given database.
func NewUserStore(db *mongo.Database, collectionName string) types.UserStore {
	if collectionName == "" {
		collectionName = "users"
	}
	return &userStore{
		coll: db.Collection(collectionName),
	}
}

func (s *userStore) CreateUser(ctx context.Context, user *types.User) error {
	// Usernames are unique case-insensitively
	user.Username = strings.ToLower(user.Username)

	count, err := s.coll.CountDocuments(ctx, bson.M{"username": user.Username})
	if err != nil {
		return err
	}
	if count > 0 {
		return types.ErrUserExists
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UnixMilli()

	_, err = s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrUserExists
	}
	return err
}

func (s *userStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	username = strings.ToLower(username)

	var user types.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *userStore) Close(ctx context.Context) error {
	return nil
}
