// Package chat is the conversation orchestrator: it owns the ordered message
// sequence of the active conversation, drives query submission with
// optimistic insertion, and reconciles server-assigned conversation identity.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Service orchestrates message history and query submission. At most one
// query or history load is in flight at a time; messages are appended in
// send order, so the sequence is exactly the chronological interleaving of
// human and assistant turns.
type Service struct {
	gateway Gateway
	scope   Scope
	topK    int

	onCreated func(ctx context.Context, conversationID string)
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	messages []domain.Message
	querying bool
	loading  bool
	lastErr  error
}

// New creates an orchestrator bound to a gateway and a scope controller.
func New(gateway Gateway, scope Scope) *Service {
	return &Service{
		gateway: gateway,
		scope:   scope,
		topK:    domain.DefaultTopK,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithTopK overrides the retrieval breadth sent with every query.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// OnConversationCreated installs a hook invoked after the orchestrator adopts
// an implicitly created conversation (used to refresh the directory).
func (s *Service) OnConversationCreated(fn func(ctx context.Context, conversationID string)) *Service {
	s.onCreated = fn
	return s
}

// Send submits a question within the active scope.
//
// The human message is appended optimistically before the round-trip and is
// never rolled back: the utterance is a historical fact independent of answer
// success. On success the assistant reply is appended with its sources; when
// no conversation was active beforehand the server-returned id becomes the
// active conversation. On failure the error is retained as user-visible state
// and returned; the querying state is exited on every path.
func (s *Service) Send(ctx context.Context, text string) (domain.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Message{}, domain.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.querying || s.loading {
		s.mu.Unlock()
		return domain.Message{}, domain.ErrQueryInFlight
	}
	human := domain.Message{
		ID:        s.newID(),
		Role:      domain.RoleHuman,
		Content:   trimmed,
		CreatedAt: s.now(),
	}
	s.messages = append(s.messages, human)
	s.querying = true
	s.lastErr = nil
	s.mu.Unlock()

	docID, _ := s.scope.ActiveDocumentID()
	convID, hadConversation := s.scope.ActiveConversationID()

	result, err := s.gateway.Query(ctx, domain.QueryRequest{
		Text:           trimmed,
		TopK:           s.topK,
		DocumentID:     docID,
		ConversationID: convID,
	})
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.querying = false
		s.mu.Unlock()
		return domain.Message{}, fmt.Errorf("send message: %w", err)
	}

	adopted := ""
	if !hadConversation && result.ConversationID != "" {
		s.scope.AdoptConversation(result.ConversationID)
		adopted = result.ConversationID
	}

	assistant := domain.Message{
		ID:        s.newID(),
		Role:      domain.RoleAssistant,
		Content:   result.Answer,
		Sources:   result.Sources,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, assistant)
	s.querying = false
	s.mu.Unlock()

	if adopted != "" && s.onCreated != nil {
		s.onCreated(ctx, adopted)
	}
	return assistant, nil
}

// Load fetches the full history of a conversation and replaces the in-memory
// sequence wholesale. It refuses to run while a query is outstanding. On
// failure the sequence is cleared and the error retained.
func (s *Service) Load(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	if s.querying || s.loading {
		s.mu.Unlock()
		return domain.ErrQueryInFlight
	}
	s.loading = true
	s.mu.Unlock()

	messages, err := s.gateway.GetConversation(ctx, conversationID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.messages = nil
		s.lastErr = err
		return fmt.Errorf("load conversation: %w", err)
	}
	s.messages = messages
	s.lastErr = nil
	return nil
}

// Reset clears the message sequence and error state without a network call.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.lastErr = nil
}

// Messages returns a copy of the current message sequence.
func (s *Service) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// IsQuerying reports whether a query or history load is in flight.
// Presentation disables input while true.
func (s *Service) IsQuerying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.querying || s.loading
}

// LastError returns the retained user-visible error, if any.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError drops the retained error (the user dismissed the banner).
func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}
