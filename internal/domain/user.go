package domain

import "time"

// User is the stored record for an account that authenticates with a login code.
type User struct {
	ID           string
	LoginCode    string
	PasswordHash string
	DisplayName  *string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of User. It has no password hash field.
type PublicUser struct {
	ID          string    `json:"id"`
	LoginCode   string    `json:"loginCode"`
	DisplayName *string   `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Public returns the projection safe to send across the service boundary.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:          u.ID,
		LoginCode:   u.LoginCode,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
