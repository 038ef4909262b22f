// pkg/memcache/share_links.go
package mem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ShareLinkEntry is the cached lookup result for a share token. It holds only
// fields that never change after issue; activation is always read from storage.
type ShareLinkEntry struct {
	ShareID   uuid.UUID  `json:"share_id"`
	TripID    uuid.UUID  `json:"trip_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ShareLinkCache interface {
	Set(ctx context.Context, token string, e ShareLinkEntry, ttl time.Duration) error

	// Get returns ok=false for missing or expired entries.
	Get(ctx context.Context, token string) (ShareLinkEntry, bool, error)

	Delete(ctx context.Context, token string) error
}

type entry struct {
	value     ShareLinkEntry
	expiresAt time.Time
}

type ShareLinks struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewShareLinks() *ShareLinks {
	return &ShareLinks{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *ShareLinks) Set(_ context.Context, token string, e ShareLinkEntry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		value:     e,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *ShareLinks) Get(_ context.Context, token string) (ShareLinkEntry, bool, error) {
	s.mu.RLock()
	e, ok := s.data[token]
	s.mu.RUnlock()

	if !ok {
		return ShareLinkEntry{}, false, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, still := s.data[token]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.data, token) // cleanup expired
		}
		s.mu.Unlock()
		return ShareLinkEntry{}, false, nil
	}
	return e.value, true, nil
}

func (s *ShareLinks) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
	return nil
}

func (s *ShareLinks) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
