package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
	"github.com/Nouh2/gaia-admin-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// OverviewLoadedMsg contains the computed overview aggregates.
type OverviewLoadedMsg struct {
	Overview services.Overview
	Error    error
}

// UsersLoadedMsg contains a loaded (possibly filtered) user listing.
type UsersLoadedMsg struct {
	Users []models.User
	Error error
}

// ConversationsLoadedMsg contains a loaded (possibly filtered)
// conversation listing.
type ConversationsLoadedMsg struct {
	Conversations []models.Conversation
	Error         error
}

// UserConversationsLoadedMsg contains the conversations of one user.
type UserConversationsLoadedMsg struct {
	UserID        string
	Conversations []models.Conversation
	Error         error
}

// ConversationSearchResultMsg contains conversations matching a
// message search.
type ConversationSearchResultMsg struct {
	Term          string
	Conversations []models.Conversation
	Error         error
}

// UserSearchResultMsg contains users matching an email search.
type UserSearchResultMsg struct {
	Term  string
	Users []models.User
	Error error
}

// UsersExportedMsg contains the result of a user export.
type UsersExportedMsg struct {
	Result services.ExportResult
	Error  error
}

// ConversationExportedMsg contains the result of a conversation
// export.
type ConversationExportedMsg struct {
	ConversationID string
	Path           string
	Error          error
}

// CacheAgeMsg carries the manager's current snapshot age.
type CacheAgeMsg struct {
	Age time.Duration
	OK  bool
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "overview", "users", "conversations"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}
