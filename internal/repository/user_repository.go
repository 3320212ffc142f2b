package repository

import (
	"context"

	"github.com/spec-kit/identity-service/internal/domain"
)

// UserRepository defines persistence access for users keyed by login code.
type UserRepository interface {
	// Create inserts a new user; a taken login code yields ErrDuplicateKey.
	Create(ctx context.Context, user *domain.User) error
	// UpsertByLoginCode creates the user or replaces the password hash of an existing one.
	UpsertByLoginCode(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLoginCode(ctx context.Context, loginCode string) (*domain.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, login_code, password_hash, display_name, avatar_url, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, login_code, password_hash, display_name, avatar_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.LoginCode,
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translateError(err)
}

func (r *userRepository) UpsertByLoginCode(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, login_code, password_hash, display_name)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (login_code) DO UPDATE
        SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
        RETURNING ` + userColumns

	return translateError(scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.LoginCode,
		user.PasswordHash,
		user.DisplayName,
	), user))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`

	var user domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByLoginCode(ctx context.Context, loginCode string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login_code=$1`

	var user domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, loginCode), &user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.LoginCode,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
