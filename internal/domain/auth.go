package domain

import "time"

// SessionClaims is the decoded content of a signed session token.
type SessionClaims struct {
	Subject   string
	LoginCode string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session pairs an issued token with the user it was issued for.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *PublicUser
}
