package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore keeps sessions in a process-local map. Sessions do not survive
// a restart and are not shared between replicas.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (Session, error) {
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, k)
		}
	}

	expiresAt := now.Add(s.ttl)
	s.sessions[hashToken(token)] = memoryEntry{userID: userID, expiresAt: expiresAt}
	return Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := hashToken(token)
	e, ok := s.sessions[key]
	if !ok {
		return "", ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, key)
		return "", ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, hashToken(token))
	s.mu.Unlock()
	return nil
}

// Len returns the number of sessions currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
