package directory

import (
	"context"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Gateway is the remote listing/deletion surface the directory drives.
type Gateway interface {
	ListConversations(ctx context.Context, documentID string) ([]domain.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Scope lets the directory vacate the active conversation when it gets
// deleted, so the user is never left pointing at a deleted conversation.
type Scope interface {
	ActiveConversationID() (string, bool)
	StartNewConversation()
}
