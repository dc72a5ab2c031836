package models

// NoTitlePlaceholder is rendered for conversations stored without a title.
const NoTitlePlaceholder = "No title"

// Message is a single exchange entry inside a conversation. Messages
// have no standalone identity; they are addressed by (conversation,
// index) and are immutable from this application's point of view.
type Message struct {
	Content string `bson:"content" json:"content"`
	IsUser  bool   `bson:"isUser" json:"isUser"`
}

// Conversation represents a user's conversation with the assistant.
// The owning user id is a foreign key into the users collection but is
// not referentially enforced at read time.
type Conversation struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt string    `bson:"createdAt" json:"createdAt"`
	UpdatedAt string    `bson:"updatedAt" json:"updatedAt"`
	Messages  []Message `bson:"messages" json:"messages"`
}

// TitleOrPlaceholder returns the conversation title, or the "No title"
// placeholder when none is stored.
func (c *Conversation) TitleOrPlaceholder() string {
	if c.Title == "" {
		return NoTitlePlaceholder
	}
	return c.Title
}

// MessageCount returns the number of messages in the conversation.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// ShortUserID returns a truncated owning-user id for compact display.
func (c *Conversation) ShortUserID() string {
	if c.UserID == "" {
		return NA
	}
	if len(c.UserID) <= 12 {
		return c.UserID
	}
	return c.UserID[:12] + "..."
}
