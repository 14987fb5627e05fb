package chat

import (
	"sync"
	"time"

	"StockChat/internal/dispatch"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// SessionStore keeps one conversation per session id. A session ends when it
// sits idle for the TTL and is swept, or when End is called.
type SessionStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

// NewSessionStore creates a store. ttl <= 0 keeps sessions until End. Expired
// sessions are removed by DeleteExpired, which the scheduler calls.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	c := cache.New(ttl, 0)
	c.OnEvicted(func(id string, v interface{}) {
		sess := v.(*dispatch.Session)
		log.Info().Str("session", id).Dur("age", sess.Age()).Msg("session ended")
	})
	return &SessionStore{cache: c}
}

// Get returns the session for id, creating it on first use, and refreshes its TTL.
func (s *SessionStore) Get(id string) *dispatch.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(id); ok {
		sess := v.(*dispatch.Session)
		s.cache.SetDefault(id, sess)
		return sess
	}
	sess := dispatch.NewSession(id)
	s.cache.SetDefault(id, sess)
	return sess
}

// End discards the session for id.
func (s *SessionStore) End(id string) {
	s.cache.Delete(id)
}

// DeleteExpired drops idle sessions.
func (s *SessionStore) DeleteExpired() {
	s.cache.DeleteExpired()
}

// Count returns the number of live sessions, including expired ones not yet swept.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}
