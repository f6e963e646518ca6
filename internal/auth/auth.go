package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid or expired session")

// Session is what a verified access token asserts.
type Session struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

type Authenticator interface {
	Issue(userID int64) (string, *Session, error)
	Verify(token string) (*Session, error)
}
