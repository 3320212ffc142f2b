package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/identity-service/internal/domain"
	apperrors "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest payload for POST /auth/register.
type RegisterRequest struct {
	LoginCode   string  `json:"loginCode" validate:"required,min=3,max=64"`
	Password    string  `json:"password" validate:"required,min=6,max=128"`
	DisplayName *string `json:"displayName" validate:"omitempty,max=120"`
}

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	LoginCode string `json:"loginCode" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string             `json:"accessToken"`
	User        *domain.PublicUser `json:"user"`
}

// NewAuthResponse projects a session onto the wire shape.
func NewAuthResponse(session *domain.Session) AuthResponse {
	return AuthResponse{AccessToken: session.AccessToken, User: session.User}
}

// Validate trims the login code and checks the payload against the input constraints.
func (r *RegisterRequest) Validate() error {
	r.LoginCode = strings.TrimSpace(r.LoginCode)
	return validateStruct(r)
}

// Validate trims the login code and checks the payload against the input constraints.
func (r *LoginRequest) Validate() error {
	r.LoginCode = strings.TrimSpace(r.LoginCode)
	return validateStruct(r)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[lowerFirst(fe.Field())] = fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
