package domain

import "time"

// DefaultTitle is the server-side title of a conversation before its first
// human message names it.
const DefaultTitle = "New Chat"

// Conversation is a summary entry in the conversation directory. Message
// content is owned separately (see Message).
type Conversation struct {
	ID         string
	Title      string
	DocumentID string // empty means scoped to all documents
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayTitle returns the title, falling back to the server default when
// the server sent none.
func (c Conversation) DisplayTitle() string {
	if c.Title == "" {
		return DefaultTitle
	}
	return c.Title
}
