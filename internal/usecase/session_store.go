package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bellavista/orderbot/internal/domain"
)

const (
	maxSessionTurns   = 20
	defaultSessionTTL = 24 * time.Hour
)

// Turn is one message in a conversation
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Action    string    `json:"action,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionStore keeps the recent turns of each conversation in a byte cache.
// Writes to one session are serialized so concurrent messages never drop a turn.
type SessionStore struct {
	cache domain.CacheRepository
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is a per-session mutex, dropped once no writer holds it
type sessionLock struct {
	sync.Mutex
	refs int
}

// NewSessionStore creates a session store; a non-positive ttl means 24 hours
func NewSessionStore(cache domain.CacheRepository, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{cache: cache, ttl: ttl, locks: make(map[string]*sessionLock)}
}

// lock acquires the session's mutex and returns its release func
func (s *SessionStore) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// sessionKey creates the cache key for a session. Format: "session:{id}"
func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// History returns the stored turns, oldest first.
// Returns ErrSessionNotFound when the session has no history.
func (s *SessionStore) History(ctx context.Context, id string) ([]Turn, error) {
	data, err := s.cache.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return turns, nil
}

// Append adds turns to a session, keeping only the most recent ones
func (s *SessionStore) Append(ctx context.Context, id string, turns ...Turn) error {
	defer s.lock(id)()

	history, err := s.History(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}

	history = append(history, turns...)
	if len(history) > maxSessionTurns {
		history = history[len(history)-maxSessionTurns:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	return s.cache.Set(ctx, sessionKey(id), data, s.ttl)
}

// Clear drops all history for a session
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	defer s.lock(id)()

	return s.cache.Delete(ctx, sessionKey(id))
}
