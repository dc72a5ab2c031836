// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/Nouh2/gaia-admin-tui/internal/config"
	"github.com/Nouh2/gaia-admin-tui/internal/logger"
	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/services/export"
	"github.com/Nouh2/gaia-admin-tui/internal/services/filter"
	"github.com/Nouh2/gaia-admin-tui/internal/services/snapshot"
	"github.com/Nouh2/gaia-admin-tui/internal/services/stats"
	"github.com/Nouh2/gaia-admin-tui/internal/store"
)

const (
	recentConversations = 10
	volumeDays          = 14
)

// Overview bundles everything the overview screen renders.
type Overview struct {
	Stats  models.OverviewStats
	Recent []models.Conversation
	Volume []models.VolumePoint
}

// ExportResult reports a completed export.
type ExportResult struct {
	UsersPath      string
	EmailPlansPath string
}

// Manager is the synchronous facade between the UI and the data
// layers. All reads go through the cached snapshots; writes never
// happen.
type Manager struct {
	cfg    *config.Config
	store  *store.Store
	cache  *snapshot.Service
	notify func(title, message string) error
	now    func() time.Time
}

// NewManager connects to the document store and prepares the
// snapshot cache. The store handle is created exactly once here and
// reused for the life of the process.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	m := newManagerWith(st, cfg)
	m.store = st
	return m, nil
}

func newManagerWith(loader snapshot.Loader, cfg *config.Config) *Manager {
	return &Manager{
		cfg:   cfg,
		cache: snapshot.New(loader, cfg.CacheTTL),
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		now: time.Now,
	}
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.cfg.RequestTimeout)
}

// Overview computes the aggregate view over the current snapshots.
// When a refresh failed but stale snapshots exist, the overview is
// computed over them and the refresh error is returned alongside it
// so the caller can surface the failure.
func (m *Manager) Overview(ctx context.Context) (Overview, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if err != nil && users == nil {
		return Overview{}, err
	}
	convs, convErr := m.cache.Conversations(ctx)
	if convErr != nil && convs == nil {
		return Overview{}, convErr
	}
	if err == nil {
		err = convErr
	}

	return Overview{
		Stats:  stats.Compute(users, convs),
		Recent: stats.Recent(convs, recentConversations),
		Volume: stats.DailyVolume(convs, volumeDays, m.now()),
	}, err
}

// Users returns the user snapshot narrowed by f. A non-nil error with
// a non-nil slice means the refresh failed and the listing is stale.
func (m *Manager) Users(ctx context.Context, f filter.UserFilter) ([]models.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if users == nil {
		return nil, err
	}
	return filter.Users(users, f), err
}

// Plans returns the distinct plan names in the user snapshot.
func (m *Manager) Plans(ctx context.Context) ([]string, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if users == nil {
		return nil, err
	}
	return filter.Plans(users), err
}

// Conversations returns the conversation snapshot narrowed by f,
// newest first.
func (m *Manager) Conversations(ctx context.Context, f filter.ConversationFilter) ([]models.Conversation, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	convs, err := m.cache.Conversations(ctx)
	if convs == nil {
		return nil, err
	}
	return filter.Conversations(convs, f), err
}

// UserConversations returns a user's conversations straight from the
// store, newest first.
func (m *Manager) UserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.cache.UserConversations(ctx, userID)
}

// SearchUsers finds users by email substring.
func (m *Manager) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if users == nil {
		return nil, err
	}
	return filter.UsersByEmail(users, term), err
}

// SearchConversations finds conversations whose messages contain
// term.
func (m *Manager) SearchConversations(ctx context.Context, term string) ([]models.Conversation, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	convs, err := m.cache.Conversations(ctx)
	if convs == nil {
		return nil, err
	}
	return filter.SearchMessages(convs, term), err
}

// ConversationsByID returns every conversation in the snapshot with
// the given id. A miss is an empty slice, not an error.
func (m *Manager) ConversationsByID(ctx context.Context, id string) ([]models.Conversation, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	convs, err := m.cache.Conversations(ctx)
	if convs == nil {
		return nil, err
	}
	return filter.ConversationsByID(convs, id), err
}

// UsersByID returns every user in the snapshot with the given id. A
// miss is an empty slice, not an error.
func (m *Manager) UsersByID(ctx context.Context, id string) ([]models.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if users == nil {
		return nil, err
	}
	return filter.UsersByID(users, id), err
}

// ExportUsers writes both user workbooks to the export directory and
// raises a desktop notification on success. The workbooks contain the
// listing as the operator currently sees it: the snapshot narrowed by
// f and, when non-empty, the email substring query.
func (m *Manager) ExportUsers(ctx context.Context, f filter.UserFilter, emailQuery string) (ExportResult, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	users, err := m.cache.Users(ctx)
	if err != nil {
		// Never write workbooks from a snapshot that failed to
		// refresh; the operator sees the failure instead.
		return ExportResult{}, err
	}
	users = filter.Users(users, f)
	if emailQuery != "" {
		users = filter.UsersByEmail(users, emailQuery)
	}

	now := m.now()
	usersPath, err := export.WriteUsersXLSX(m.cfg.ExportDir, users, now)
	if err != nil {
		return ExportResult{}, err
	}
	emailsPath, err := export.WriteEmailPlanXLSX(m.cfg.ExportDir, users, now)
	if err != nil {
		return ExportResult{}, err
	}

	if err := m.notify("Export complete", fmt.Sprintf("%d users written to %s", len(users), m.cfg.ExportDir)); err != nil {
		logger.Warn("export notification failed", "error", err)
	}

	return ExportResult{UsersPath: usersPath, EmailPlansPath: emailsPath}, nil
}

// ExportConversation writes one conversation to a JSON file and
// returns its path. With duplicate ids in the store the first match
// wins.
func (m *Manager) ExportConversation(ctx context.Context, id string) (string, error) {
	convs, err := m.ConversationsByID(ctx, id)
	if err != nil {
		return "", err
	}
	if len(convs) == 0 {
		return "", fmt.Errorf("conversation %s not found", id)
	}
	return export.WriteConversationJSON(m.cfg.ExportDir, convs[0])
}

// Refresh drops the cached snapshots so the next read hits the
// store.
func (m *Manager) Refresh() {
	m.cache.Invalidate()
}

// CacheAge reports the age of the current snapshot, false when
// nothing has been loaded yet.
func (m *Manager) CacheAge() (time.Duration, bool) {
	return m.cache.Age()
}

// Close disconnects from the document store.
func (m *Manager) Close(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	return m.store.Close(ctx)
}
