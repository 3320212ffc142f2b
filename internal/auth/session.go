package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// SessionResolver turns a bearer token into the current user.
type SessionResolver struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSessionResolver constructs a resolver.
func NewSessionResolver(tokens *TokenManager, users repository.UserRepository) *SessionResolver {
	return &SessionResolver{tokens: tokens, users: users}
}

// Resolve validates the token and re-fetches its subject. A bad token or a subject
// that no longer exists yields an Unauthenticated error; store failures are returned as is.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*domain.PublicUser, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.NewUnauthenticated(errors.New("missing token"))
	}

	claims, err := r.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticated(err)
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthenticated(errors.New("subject no longer exists"))
		}
		return nil, err
	}
	return user.Public(), nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
