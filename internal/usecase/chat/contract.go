package chat

import (
	"context"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Gateway is the remote service surface the orchestrator drives.
type Gateway interface {
	Query(ctx context.Context, q domain.QueryRequest) (domain.QueryResult, error)
	GetConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
}

// Scope exposes the active scope pair and receives server-assigned
// conversation identities after implicit creation.
type Scope interface {
	ActiveDocumentID() (string, bool)
	ActiveConversationID() (string, bool)
	AdoptConversation(id string)
}
