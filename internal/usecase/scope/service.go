// Package scope owns the active (document, conversation) pair and mediates
// transitions between scopes. Transitions themselves never touch the network;
// history loading is delegated to the orchestrator and may fail without
// reverting the scope change.
package scope

import (
	"context"
	"fmt"
	"sync"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Service is the scope controller. State transitions execute to completion
// under the lock; no two mutations of the scope pair ever interleave.
type Service struct {
	mu      sync.Mutex
	docID   string
	docName string
	convID  string

	history History
}

// New creates a scope controller. The history owner is attached separately
// via BindHistory because the orchestrator is constructed against this
// controller.
func New() *Service {
	return &Service{}
}

// BindHistory attaches the message-history owner invoked on transitions.
func (s *Service) BindHistory(h History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h
}

// SelectDocument activates a document (empty id means all documents).
// A document change without an explicit conversation choice always starts a
// fresh scope: the active conversation and any pending history are cleared
// unconditionally.
func (s *Service) SelectDocument(id, name string) {
	s.mu.Lock()
	s.docID = id
	s.docName = name
	s.convID = ""
	h := s.history
	s.mu.Unlock()

	if h != nil {
		h.Reset()
	}
}

// SelectConversation activates an existing conversation and loads its
// history. A conversation carries its own document scope, which takes
// precedence over whatever was active. A load failure does not revert the
// scope change.
func (s *Service) SelectConversation(ctx context.Context, conv domain.Conversation) error {
	s.mu.Lock()
	s.convID = conv.ID
	if conv.DocumentID != "" {
		if conv.DocumentID != s.docID {
			// Display name of the newly scoped document is not carried on
			// the summary; it resolves on the next directory/library refresh.
			s.docName = ""
		}
		s.docID = conv.DocumentID
	}
	h := s.history
	s.mu.Unlock()

	if h == nil {
		return nil
	}
	if err := h.Load(ctx, conv.ID); err != nil {
		return fmt.Errorf("select conversation: %w", err)
	}
	return nil
}

// StartNewConversation clears the active conversation and its history while
// preserving the active document. The next query implicitly creates a
// conversation bound to that document.
func (s *Service) StartNewConversation() {
	s.mu.Lock()
	s.convID = ""
	h := s.history
	s.mu.Unlock()

	if h != nil {
		h.Reset()
	}
}

// AdoptConversation records a server-assigned conversation identity after an
// implicit creation. It does not touch history: the orchestrator already
// holds the exchanged messages.
func (s *Service) AdoptConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convID = id
}

// ActiveDocumentID returns the active document id, if any.
func (s *Service) ActiveDocumentID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docID, s.docID != ""
}

// ActiveDocumentName returns the display name of the active document, if known.
func (s *Service) ActiveDocumentName() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docName, s.docName != ""
}

// ActiveConversationID returns the active conversation id, if any.
func (s *Service) ActiveConversationID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convID, s.convID != ""
}
