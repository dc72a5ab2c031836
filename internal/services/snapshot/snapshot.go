// Package snapshot caches full-collection reads behind a TTL so that
// browsing the console does not re-scan the document store on every
// keystroke.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/Nouh2/gaia-admin-tui/internal/logger"
	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

// Loader is the read surface the cache sits in front of. *store.Store
// satisfies it.
type Loader interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	ListUserConversations(ctx context.Context, userID string) ([]models.Conversation, error)
}

// Service holds one cached snapshot per collection. All entries share
// the same TTL; each expires independently of the others.
type Service struct {
	loader Loader
	ttl    time.Duration

	// now is replaceable in tests.
	now func() time.Time

	mu          sync.RWMutex
	users       []models.User
	usersAt     time.Time
	hasUsers    bool
	convs       []models.Conversation
	convsAt     time.Time
	hasConvs    bool
	lastRefresh time.Time
}

// New creates a snapshot service with the given TTL.
func New(loader Loader, ttl time.Duration) *Service {
	return &Service{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Users returns the cached user snapshot, refreshing it from the
// store when the TTL has elapsed. When a refresh fails and a prior
// snapshot exists, that stale snapshot is returned alongside the
// error so the console keeps rendering.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	if s.hasUsers && s.now().Sub(s.usersAt) < s.ttl {
		users := s.users
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasUsers && s.now().Sub(s.usersAt) < s.ttl {
		return s.users, nil
	}

	users, err := s.loader.ListUsers(ctx)
	if err != nil {
		if s.hasUsers {
			logger.Warn("user snapshot refresh failed, serving stale data", "error", err)
			return s.users, err
		}
		return nil, err
	}

	s.users = users
	s.usersAt = s.now()
	s.hasUsers = true
	s.lastRefresh = s.usersAt
	return users, nil
}

// Conversations returns the cached conversation snapshot, refreshing
// from the store when the TTL has elapsed. Ordering is whatever the
// store returned, creation timestamp descending.
func (s *Service) Conversations(ctx context.Context) ([]models.Conversation, error) {
	s.mu.RLock()
	if s.hasConvs && s.now().Sub(s.convsAt) < s.ttl {
		convs := s.convs
		s.mu.RUnlock()
		return convs, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasConvs && s.now().Sub(s.convsAt) < s.ttl {
		return s.convs, nil
	}

	convs, err := s.loader.ListConversations(ctx)
	if err != nil {
		if s.hasConvs {
			logger.Warn("conversation snapshot refresh failed, serving stale data", "error", err)
			return s.convs, err
		}
		return nil, err
	}

	s.convs = convs
	s.convsAt = s.now()
	s.hasConvs = true
	s.lastRefresh = s.convsAt
	return convs, nil
}

// UserConversations is a live per-user lookup. It bypasses the cache
// entirely so a drill-down always reflects the store.
func (s *Service) UserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.loader.ListUserConversations(ctx, userID)
}

// Invalidate drops all cached snapshots. The next read of each
// collection goes to the store.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasUsers = false
	s.hasConvs = false
	s.users = nil
	s.convs = nil
}

// Age reports how old the most recent successful snapshot is, and
// false when nothing has been loaded yet.
func (s *Service) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRefresh.IsZero() {
		return 0, false
	}
	return s.now().Sub(s.lastRefresh), true
}

// LastRefresh returns the time of the most recent successful snapshot
// load, zero when nothing has been loaded yet.
func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
