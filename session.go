package docuchat

import (
	"context"
	"time"

	"github.com/docuchat/docuchat-go/internal/usecase/chat"
	"github.com/docuchat/docuchat-go/internal/usecase/directory"
	"github.com/docuchat/docuchat-go/internal/usecase/scope"
)

// Session holds the conversational state of one user: the active document
// and conversation scope, the message history, and the conversation
// directory. A Session is safe for concurrent use, but only one query or
// history load runs at a time; overlapping SendMessage calls fail with
// ErrQueryInFlight.
type Session struct {
	client    *Client
	scope     *scope.Service
	chat      *chat.Service
	directory *directory.Service
}

// NewSession creates an independent Session backed by this client. The new
// session starts with no document selected and an empty directory.
func (c *Client) NewSession() *Session {
	sc := scope.New()
	dir := directory.New(c.gateway, sc)
	ch := chat.New(c.gateway, sc).
		WithTopK(c.topK).
		OnConversationCreated(func(ctx context.Context, _ string) {
			docID, _ := sc.ActiveDocumentID()
			// A refresh failure here only leaves the directory stale; the
			// adopted conversation id is already in scope.
			_ = dir.Refresh(ctx, docID)
		})
	sc.BindHistory(ch)

	return &Session{
		client:    c,
		scope:     sc,
		chat:      ch,
		directory: dir,
	}
}

// SelectDocument makes the given document the active query target. Any
// active conversation is dropped and the message history is cleared; no
// network call is made.
func (s *Session) SelectDocument(id, name string) {
	s.scope.SelectDocument(id, name)
}

// SelectConversation resumes an existing conversation and loads its history.
// If the conversation is bound to a document, that document becomes the
// active scope. On load failure the history is empty and the error is
// returned, but the conversation stays selected so the caller may retry.
func (s *Session) SelectConversation(ctx context.Context, conv Conversation) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("conversation.load", start, err) }()

	return s.scope.SelectConversation(ctx, toInternalConversation(conv))
}

// StartNewConversation clears the active conversation and history while
// keeping the document scope, so the next SendMessage opens a fresh thread.
func (s *Session) StartNewConversation() {
	s.scope.StartNewConversation()
}

// SendMessage appends text as a human message and queries the service. The
// human message stays in the history even when the query fails. When the
// service creates a conversation for the request, the session adopts its id
// and refreshes the directory. The returned Message is the assistant reply.
func (s *Session) SendMessage(ctx context.Context, text string) (_ Message, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("session.send", start, err) }()

	reply, err := s.chat.Send(ctx, text)
	if err != nil {
		return Message{}, err
	}
	return fromInternalMessage(reply), nil
}

// Messages returns a copy of the current conversation history, oldest first.
func (s *Session) Messages() []Message {
	return fromInternalMessages(s.chat.Messages())
}

// IsQuerying reports whether a query or history load is in flight.
func (s *Session) IsQuerying() bool {
	return s.chat.IsQuerying()
}

// LastError returns the most recent send or load failure, or nil. It is
// sticky until ClearError or the next successful operation.
func (s *Session) LastError() error {
	return s.chat.LastError()
}

// ClearError discards the sticky error from LastError.
func (s *Session) ClearError() {
	s.chat.ClearError()
}

// Conversations returns the directory as of the last refresh, in the
// server's recency order.
func (s *Session) Conversations() []Conversation {
	return fromInternalConversations(s.directory.Conversations())
}

// RefreshConversations reloads the directory from the service, filtered to
// the active document when one is selected.
func (s *Session) RefreshConversations(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("directory.refresh", start, err) }()

	docID, _ := s.scope.ActiveDocumentID()
	return s.directory.Refresh(ctx, docID)
}

// DeleteConversation removes a conversation on the service and refreshes
// the directory. Deleting an already-gone conversation succeeds. If the
// deleted conversation was active, the session falls back to a fresh
// conversation in the same document scope.
func (s *Session) DeleteConversation(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("conversation.delete", start, err) }()

	return s.directory.Remove(ctx, id)
}

// ActiveScope reports the session's current document and conversation.
func (s *Session) ActiveScope() Scope {
	var sc Scope
	sc.DocumentID, sc.HasDocument = s.scope.ActiveDocumentID()
	sc.DocumentName, _ = s.scope.ActiveDocumentName()
	sc.ConversationID, sc.HasConversation = s.scope.ActiveConversationID()
	return sc
}
