// Package session binds opaque browser cookies to authenticated user ids.
//
// A Store issues and resolves tokens; a Manager moves those tokens in and
// out of HTTP cookies. Four stores exist: PostgresStore and RedisStore keep
// sessions server side, CookieStore signs the session into the cookie itself,
// and MemoryStore holds them in process for development and tests.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Lookup for unknown, expired or destroyed tokens.
var ErrNotFound = errors.New("session not found")

// Session is an issued session.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Store persists sessions. Implementations must treat expired sessions as
// absent.
type Store interface {
	Create(ctx context.Context, userID string) (Session, error)
	Lookup(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

// hashToken is the at-rest form of a server-side token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
