// Package identity implements registration and login. Credentials are
// checked by plaintext equality against the user store: there is no hashing,
// no tokens, and no server-side session. Callers are responsible for
// remembering a successful login.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"recipebox/internal/storage/types"
)

// ErrInvalidCredentials is returned when the username is unknown or the
// password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the authentication API consumed by the REST gateway.
type Service interface {
	// Register creates a new user. Returns types.ErrUserExists when the
	// username is taken.
	Register(ctx context.Context, username, password string) error

	// Login checks the credentials. Returns ErrInvalidCredentials on any
	// mismatch; success has no further effect.
	Login(ctx context.Context, username, password string) error
}

type service struct {
	users  types.UserStore
	logger *slog.Logger
}

// NewService creates the identity service.
func NewService(users types.UserStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		users:  users,
		logger: logger.With("component", "identity"),
	}
}

func (s *service) Register(ctx context.Context, username, password string) error {
	err := s.users.CreateUser(ctx, &types.User{Username: username, Password: password})
	if err != nil {
		return err
	}
	s.logger.Info("User registered", "username", username)
	return nil
}

func (s *service) Login(ctx context.Context, username, password string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if user.Password != password {
		return ErrInvalidCredentials
	}
	return nil
}
