package docuchat

import "time"

// Role distinguishes the two message kinds.
type Role string

// Role constants.
const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Document is a reference to an ingested file.
type Document struct {
	ID     string
	Name   string
	Chunks int
}

// UploadReceipt is the server's acknowledgement of a successful upload.
type UploadReceipt struct {
	ID            string
	Filename      string
	Size          int64
	ChunksCreated int
}

// Conversation is a summary entry in the conversation directory.
// A zero DocumentID means the conversation is scoped to all documents.
type Conversation struct {
	ID         string
	Title      string
	DocumentID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayTitle returns the title shown in directory listings, falling back
// to a placeholder for untitled conversations.
func (c Conversation) DisplayTitle() string {
	if c.Title == "" {
		return "New Chat"
	}
	return c.Title
}

// Source is a scored excerpt attached to an assistant message.
type Source struct {
	Content    string
	Score      float64
	Page       int
	DocumentID string
}

// Message is one turn of a conversation. Only assistant messages carry sources.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Sources   []Source
	CreatedAt time.Time
}

// Scope is the active (document, conversation) pair targeted by queries.
type Scope struct {
	DocumentID   string
	DocumentName string
	HasDocument  bool

	ConversationID  string
	HasConversation bool
}
