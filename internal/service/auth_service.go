package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// Bounds on a stored login code, after trimming.
const (
	MinLoginCodeLen = 3
	MaxLoginCodeLen = 64
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     auth.PasswordHasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	dummyHash  string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     auth.PasswordHasher
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput carries the fields accepted by Register.
type RegisterInput struct {
	LoginCode   string
	Password    string
	DisplayName *string
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	if deps.UserRepo == nil {
		return nil, errors.New("user repository is required")
	}
	if deps.Hasher == nil {
		return nil, errors.New("password hasher is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("token manager is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	// Unknown login codes are checked against this hash so both failure paths pay for one comparison.
	dummy, err := deps.Hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		tokenMgr:   deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		dummyHash:  dummy,
	}, nil
}

// Register creates a new account and signs a session for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Session, error) {
	loginCode := strings.TrimSpace(in.LoginCode)
	if n := utf8.RuneCountInString(loginCode); n < MinLoginCodeLen || n > MaxLoginCodeLen {
		return nil, apperrors.NewValidationError("loginCode must be 3 to 64 characters", map[string]any{"loginCode": "length"})
	}

	if _, err := s.users.GetByLoginCode(ctx, loginCode); err == nil {
		return nil, apperrors.ErrDuplicateCredential
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		LoginCode:    loginCode,
		PasswordHash: hash,
		DisplayName:  normalizeDisplayName(in.DisplayName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateCredential
		}
		return nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, user.LoginCode))
	return session, nil
}

// Login verifies credentials and signs a session. Unknown login codes and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, loginCode, password string) (*domain.Session, error) {
	loginCode = strings.TrimSpace(loginCode)

	user, err := s.users.GetByLoginCode(ctx, loginCode)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.hasher.Verify(password, s.dummyHash)
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, "", loginCode))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, user.ID, loginCode))
		return nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, user.LoginCode))
	return session, nil
}

func (s *AuthService) issue(user *domain.User) (*domain.Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.LoginCode)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &domain.Session{AccessToken: token, ExpiresAt: exp, User: user.Public()}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("auth event not delivered", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func normalizeDisplayName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
