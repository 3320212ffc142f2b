package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

func newResolver(t *testing.T) (*auth.SessionResolver, *auth.TokenManager, *repositorytest.MemoryUsers) {
	t.Helper()
	tokens, err := auth.NewTokenManager("resolver-secret", time.Hour)
	require.NoError(t, err)
	users := repositorytest.NewMemoryUsers()
	return auth.NewSessionResolver(tokens, users), tokens, users
}

func TestSessionResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	resolver, tokens, users := newResolver(t)

	users.Put(&domain.User{ID: "u-1", LoginCode: "stu1234", PasswordHash: "$2a$secret-hash"})
	tok, _, err := tokens.GenerateToken("u-1", "stu1234")
	require.NoError(t, err)

	t.Run("authenticated", func(t *testing.T) {
		users.ResetCounters()
		user, err := resolver.Resolve(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "stu1234", user.LoginCode)
		assert.Equal(t, 1, users.Reads)
	})

	t.Run("garbage token", func(t *testing.T) {
		for _, bad := range []string{"", "   ", "garbage", "a.b.c", "Bearer " + tok} {
			user, err := resolver.Resolve(ctx, bad)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated, bad)
		}
	})

	t.Run("subject deleted after issuance", func(t *testing.T) {
		users.Put(&domain.User{ID: "u-2", LoginCode: "gone"})
		goneTok, _, err := tokens.GenerateToken("u-2", "gone")
		require.NoError(t, err)

		users.Delete("u-2")

		user, err := resolver.Resolve(ctx, goneTok)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("store failure is not reported as unauthenticated", func(t *testing.T) {
		users.FailErr = errors.New("pool exhausted")
		defer func() { users.FailErr = nil }()

		_, err := resolver.Resolve(ctx, tok)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "Bearer   abc  ", token: "abc", ok: true},
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic dXNlcjpwYXNz", ok: false},
		{header: "abc.def.ghi", ok: false},
	}

	for _, tt := range tests {
		token, ok := auth.BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
