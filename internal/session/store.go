// Package session maps opaque tokens to authenticated usernames. Sessions
// are created at login, destroyed at logout, and expire after a configured
// TTL.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

// ErrNoSession is returned when a token is unknown or expired.
var ErrNoSession = errors.New("session: no such session")

// Store resolves opaque session tokens to usernames.
type Store interface {
	Create(ctx context.Context, username string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

type memoryEntry struct {
	username  string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// on read and swept opportunistically on create.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, username string) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for t, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, t)
		}
	}

	s.entries[token] = memoryEntry{
		username:  username,
		expiresAt: now.Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return "", ErrNoSession
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return "", ErrNoSession
	}
	return e.username, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
