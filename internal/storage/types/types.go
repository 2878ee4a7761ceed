package types

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a recipe does not exist.
	ErrNotFound = errors.New("recipe not found")
	// ErrExists is returned when trying to create a recipe that already exists.
	ErrExists = errors.New("recipe already exists")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when trying to register a username that is taken.
	ErrUserExists = errors.New("user already exists")
)

// Recipe is the primary catalog record. JSON field names are the wire shape
// served to clients; likes and isFavorite are global, not per-user.
type Recipe struct {
	ID           string   `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name"`
	Ingredients  []string `json:"ingredients" bson:"ingredients"`
	Instructions string   `json:"instructions" bson:"instructions"`
	Category     string   `json:"category,omitempty" bson:"category,omitempty"`
	Tags         []string `json:"tags" bson:"tags"`
	Likes        int      `json:"likes" bson:"likes"`
	IsFavorite   bool     `json:"isFavorite" bson:"is_favorite"`
	CreatedAt    int64    `json:"createdAt" bson:"created_at"`
	UpdatedAt    int64    `json:"updatedAt" bson:"updated_at"`
}

// Normalize replaces nil sequences with empty ones so that ingredients and
// tags always marshal as arrays, never null.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = append([]string{}, r.Ingredients...)
	c.Tags = append([]string{}, r.Tags...)
	return &c
}

// User is an account record. The password is stored as plaintext and compared
// by equality; there is no hashing and no session issuance.
type User struct {
	ID        string `json:"id" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"password" bson:"password"`
	CreatedAt int64  `json:"createdAt" bson:"created_at"`
}

// RecipeUpdate carries the mutable content fields of a recipe. A field takes
// effect only when it is present and non-empty; zero values mean "leave
// unchanged". This is the partial-update shape, not a full overwrite.
type RecipeUpdate struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// IsZero reports whether no field of the update is set.
func (u RecipeUpdate) IsZero() bool {
	return u.Name == "" && len(u.Ingredients) == 0 && u.Instructions == "" &&
		u.Category == "" && len(u.Tags) == 0
}

// SearchQuery holds the free-text search parameters. Empty parameters are
// treated as not provided: an empty substring would match every recipe and
// silently defeat the other conditions, so each condition is applied only
// when its text is non-empty. All supplied conditions must hold.
type SearchQuery struct {
	Name       string `schema:"name"`
	Ingredient string `schema:"ingredient"`
	Tag        string `schema:"tag"`
}

// IsZero reports whether every parameter is a no-op.
func (q SearchQuery) IsZero() bool {
	return q.Name == "" && q.Ingredient == "" && q.Tag == ""
}

// Matches evaluates the query against a recipe: case-insensitive substring
// on the name, and on at least one element of ingredients and tags.
func (q SearchQuery) Matches(r *Recipe) bool {
	if q.Name != "" && !containsFold(r.Name, q.Name) {
		return false
	}
	if q.Ingredient != "" && !anyContainsFold(r.Ingredients, q.Ingredient) {
		return false
	}
	if q.Tag != "" && !anyContainsFold(r.Tags, q.Tag) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(items []string, substr string) bool {
	for _, item := range items {
		if containsFold(item, substr) {
			return true
		}
	}
	return false
}

// RecipeStore defines the persistence operations for recipes. Every mutation
// is a single-document operation; there are no multi-record transactions.
type RecipeStore interface {
	// Create inserts a new recipe, assigning an ID when empty.
	Create(ctx context.Context, recipe *Recipe) error

	// Get retrieves a recipe by ID.
	Get(ctx context.Context, id string) (*Recipe, error)

	// List returns all recipes.
	List(ctx context.Context) ([]*Recipe, error)

	// Search returns the recipes matching every supplied query condition.
	// A zero query matches all recipes.
	Search(ctx context.Context, q SearchQuery) ([]*Recipe, error)

	// ByCategory returns recipes whose category equals the given value
	// exactly (case-sensitive).
	ByCategory(ctx context.Context, category string) ([]*Recipe, error)

	// Favorites returns all recipes with the favorite flag set.
	Favorites(ctx context.Context) ([]*Recipe, error)

	// Trending returns up to limit recipes ordered by likes descending.
	Trending(ctx context.Context, limit int) ([]*Recipe, error)

	// Count returns the total number of recipes.
	Count(ctx context.Context) (int64, error)

	// Random returns one uniformly-random recipe, or ErrNotFound when the
	// catalog is empty.
	Random(ctx context.Context) (*Recipe, error)

	// Update applies a partial update and returns the updated recipe.
	Update(ctx context.Context, id string, update RecipeUpdate) (*Recipe, error)

	// ReplaceTags overwrites the tag sequence and returns the updated recipe.
	ReplaceTags(ctx context.Context, id string, tags []string) (*Recipe, error)

	// SetFavorite sets the favorite flag. Idempotent.
	SetFavorite(ctx context.Context, id string, favorite bool) error

	// Like increments the like counter and returns the updated recipe.
	Like(ctx context.Context, id string) (*Recipe, error)

	// Unlike decrements the like counter, floored at zero, and returns the
	// updated recipe.
	Unlike(ctx context.Context, id string) (*Recipe, error)

	// Delete removes a recipe and returns the deleted record.
	Delete(ctx context.Context, id string) (*Recipe, error)

	// EnsureIndexes creates backend indexes where applicable.
	EnsureIndexes(ctx context.Context) error

	// Close closes the connection to the backend.
	Close(ctx context.Context) error
}

// UserStore defines the persistence operations for users.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrUserExists when the
	// username is taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// EnsureIndexes creates backend indexes where applicable.
	EnsureIndexes(ctx context.Context) error

	// Close closes the connection to the backend.
	Close(ctx context.Context) error
}
