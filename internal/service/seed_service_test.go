package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/repository/repositorytest"
	"github.com/spec-kit/identity-service/internal/service"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

func hasherForTests() auth.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

func TestSeedService_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewMemoryUsers()
	seedHasher := auth.NewBcryptHasher(bcrypt.MinCost + 1)
	seeder := service.NewSeedService(users, seedHasher, nil)

	first, err := seeder.SeedAdmin(ctx, " admin ", "first-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", first.LoginCode)
	assert.Equal(t, "Admin", *first.DisplayName)

	stored, err := users.GetByLoginCode(ctx, "admin")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	second, err := seeder.SeedAdmin(ctx, "admin", "second-pass")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err = users.GetByLoginCode(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, seedHasher.Verify("second-pass", stored.PasswordHash))
	assert.False(t, seedHasher.Verify("first-pass", stored.PasswordHash))
}

func TestSeedService_RequiresCredentials(t *testing.T) {
	seeder := service.NewSeedService(repositorytest.NewMemoryUsers(), hasherForTests(), nil)

	_, err := seeder.SeedAdmin(context.Background(), "", "pass")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
}
