package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/storage/types"
)

type userStore struct {
	mu    sync.RWMutex
	users map[string]*types.User // keyed by lowercase username
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() types.UserStore {
	return &userStore{users: make(map[string]*types.User)}
}

func (s *userStore) CreateUser(ctx context.Context, user *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, ok := s.users[key]; ok {
		return types.ErrUserExists
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UnixMilli()

	u := *user
	s.users[key] = &u
	return nil
}

func (s *userStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(username)]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *userStore) EnsureIndexes(ctx context.Context) error { return nil }

func (s *userStore) Close(ctx context.Context) error { return nil }
