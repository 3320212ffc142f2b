package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret1")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret1", hash)

	assert.True(t, h.Verify("s3cret1", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("s3cret1")
	require.NoError(t, err)
	second, err := h.Hash("s3cret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plain", "$2a$10$short", "$argon2id$v=19$m=1,t=1,p=1$x$y"} {
		assert.False(t, h.Verify("s3cret1", hash), hash)
	}
}

func TestBcryptHasher_Cost(t *testing.T) {
	assert.Equal(t, 12, NewBcryptHasher(12).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(64).Cost())

	hash, err := NewBcryptHasher(bcrypt.MinCost + 1).Hash("s3cret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	base := strings.Repeat("a", 100)

	hash, err := h.Hash(base + "1")
	require.NoError(t, err)

	assert.True(t, h.Verify(base+"1", hash))
	// Differences past byte 72 still matter.
	assert.False(t, h.Verify(base+"2", hash))
}
