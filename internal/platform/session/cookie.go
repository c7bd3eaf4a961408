package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC key CookieStore accepts.
const MinSecretLength = 32

// CookieStore signs the session into the token itself as an HS256 JWT. No
// state is kept server side, so Destroy cannot revoke a copied token before
// it expires; clearing the cookie is all logout does.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCookieStore(secret []byte, ttl time.Duration) (*CookieStore, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	return &CookieStore{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *CookieStore) Create(_ context.Context, userID string) (Session, error) {
	jti, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *CookieStore) Lookup(_ context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrNotFound
	}
	return claims.Subject, nil
}

func (s *CookieStore) Destroy(context.Context, string) error { return nil }
