package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
)

// PostgresStore keeps sessions in the sessions table. Only the SHA-256 of each
// token is stored.
type PostgresStore struct {
	db  db.Querier
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(q db.Querier, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: q, ttl: ttl, now: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, userID string) (Session, error) {
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)

	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now); err != nil {
		return Session{}, fmt.Errorf("purge expired sessions: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO sessions (token_hash, user_id, expires_at) VALUES ($1, $2, $3)`,
		hashToken(token), userID, expiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", db.MapError(err))
	}
	return Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *PostgresStore) Lookup(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.db.QueryRow(ctx,
		`SELECT user_id FROM sessions WHERE token_hash = $1 AND expires_at > $2`,
		hashToken(token), s.now()).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return userID, nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
