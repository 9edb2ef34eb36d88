// Package directory owns the list of conversation summaries, independent of
// message content. The server orders summaries by recency; the directory
// never re-sorts.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Service is the conversation directory.
type Service struct {
	gateway Gateway
	scope   Scope

	mu            sync.Mutex
	conversations []domain.Conversation
	filter        string // document filter of the last refresh
}

// New creates a directory over a gateway and a scope controller.
func New(gateway Gateway, scope Scope) *Service {
	return &Service{gateway: gateway, scope: scope}
}

// Refresh fetches the summary list, optionally filtered by document, and
// replaces the held list wholesale.
func (s *Service) Refresh(ctx context.Context, documentID string) error {
	conversations, err := s.gateway.ListConversations(ctx, documentID)
	if err != nil {
		return fmt.Errorf("refresh directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = conversations
	s.filter = documentID
	return nil
}

// Remove deletes a conversation and refreshes the directory under the last
// used filter. Deleting an already-absent id is benign: the refresh still
// runs and no error is reported, so double-click races go unpunished. If the
// removed conversation was the active one, the scope moves to a fresh
// unsaved conversation.
func (s *Service) Remove(ctx context.Context, conversationID string) error {
	deleteErr := s.gateway.DeleteConversation(ctx, conversationID)
	if deleteErr != nil && errors.Is(deleteErr, domain.ErrNotFound) {
		deleteErr = nil
	}

	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	// The refresh runs regardless of the deletion outcome.
	refreshErr := s.Refresh(ctx, filter)

	// Vacate the scope only once the conversation is actually gone; a
	// transport failure leaves it in place.
	if deleteErr == nil {
		if active, ok := s.scope.ActiveConversationID(); ok && active == conversationID {
			s.scope.StartNewConversation()
		}
	}

	if deleteErr != nil {
		return fmt.Errorf("remove conversation: %w", deleteErr)
	}
	return refreshErr
}

// Conversations returns a copy of the held summaries, in server order.
func (s *Service) Conversations() []domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}
