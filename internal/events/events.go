// Package events defines the recipe change events published after each
// successful mutation, and the publisher abstraction the catalog service
// writes them through.
package events

import (
	"context"
)

// Type identifies the kind of change an event describes.
type Type string

const (
	TypeCreated      Type = "created"
	TypeUpdated      Type = "updated"
	TypeDeleted      Type = "deleted"
	TypeLiked        Type = "liked"
	TypeUnliked      Type = "unliked"
	TypeFavorited    Type = "favorited"
	TypeUnfavorited  Type = "unfavorited"
	TypeTagsReplaced Type = "tags_replaced"
)

// Event describes a single recipe change.
type Event struct {
	Type     Type   `json:"type"`
	RecipeID string `json:"recipeId"`
	At       int64  `json:"at"` // Unix milliseconds
}

// Publisher publishes recipe change events. Publish failures must never
// surface to API callers; implementations report errors for logging only.
type Publisher interface {
	// Publish sends an event.
	Publish(ctx context.Context, evt Event) error

	// Close releases resources.
	Close() error
}
