package scope

import "context"

// History is the message-history owner the controller resets and loads on
// scope transitions (the conversation orchestrator).
type History interface {
	Reset()
	Load(ctx context.Context, conversationID string) error
}
