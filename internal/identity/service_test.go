package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/identity"
	"recipebox/internal/storage/memory"
	"recipebox/internal/storage/types"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := identity.NewService(memory.NewUserStore(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	assert.NoError(t, svc.Login(ctx, "alice", "secret"))
	assert.ErrorIs(t, svc.Login(ctx, "alice", "wrong"), identity.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "nobody", "secret"), identity.ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	store := memory.NewUserStore()
	svc := identity.NewService(store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "first"))
	assert.ErrorIs(t, svc.Register(ctx, "alice", "second"), types.ErrUserExists)

	// The original record is untouched.
	assert.NoError(t, svc.Login(ctx, "alice", "first"))
	assert.ErrorIs(t, svc.Login(ctx, "alice", "second"), identity.ErrInvalidCredentials)
}
