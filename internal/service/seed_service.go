package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// SeedService creates the bootstrap admin account with the bulk hashing cost.
type SeedService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	logger *zap.Logger
}

// NewSeedService builds the seeder.
func NewSeedService(users repository.UserRepository, hasher auth.PasswordHasher, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{users: users, hasher: hasher, logger: logger}
}

// SeedAdmin upserts the admin user, replacing the password hash if it already exists.
func (s *SeedService) SeedAdmin(ctx context.Context, loginCode, password string) (*domain.PublicUser, error) {
	loginCode = strings.TrimSpace(loginCode)
	if loginCode == "" || password == "" {
		return nil, apperrors.NewValidationError("admin login code and password are required", nil)
	}

	started := time.Now()
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	displayName := "Admin"
	user := &domain.User{
		ID:           uuid.NewString(),
		LoginCode:    loginCode,
		PasswordHash: hash,
		DisplayName:  &displayName,
	}
	if err := s.users.UpsertByLoginCode(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin seeded", zap.String("user_id", user.ID), zap.Duration("elapsed", time.Since(started)))
	return user.Public(), nil
}
