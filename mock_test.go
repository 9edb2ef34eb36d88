package docuchat

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/docuchat/docuchat-go/internal/domain"
	libraryuc "github.com/docuchat/docuchat-go/internal/usecase/library"
)

// mockGateway substitutes the remote service. Unset functions return zero
// values so tests only wire the calls they care about.
type mockGateway struct {
	uploadPDFFn          func(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error)
	listFilesFn          func(ctx context.Context) ([]domain.Document, error)
	createConversationFn func(ctx context.Context, documentID string) (string, error)
	listConversationsFn  func(ctx context.Context, documentID string) ([]domain.Conversation, error)
	getConversationFn    func(ctx context.Context, conversationID string) ([]domain.Message, error)
	deleteConversationFn func(ctx context.Context, conversationID string) error
	queryFn              func(ctx context.Context, q domain.QueryRequest) (domain.QueryResult, error)
}

func (m *mockGateway) UploadPDF(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error) {
	if m.uploadPDFFn != nil {
		return m.uploadPDFFn(ctx, r, filename)
	}
	return domain.UploadReceipt{}, nil
}

func (m *mockGateway) ListFiles(ctx context.Context) ([]domain.Document, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) CreateConversation(ctx context.Context, documentID string) (string, error) {
	if m.createConversationFn != nil {
		return m.createConversationFn(ctx, documentID)
	}
	return "", nil
}

func (m *mockGateway) ListConversations(ctx context.Context, documentID string) ([]domain.Conversation, error) {
	if m.listConversationsFn != nil {
		return m.listConversationsFn(ctx, documentID)
	}
	return nil, nil
}

func (m *mockGateway) GetConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if m.getConversationFn != nil {
		return m.getConversationFn(ctx, conversationID)
	}
	return nil, nil
}

func (m *mockGateway) DeleteConversation(ctx context.Context, conversationID string) error {
	if m.deleteConversationFn != nil {
		return m.deleteConversationFn(ctx, conversationID)
	}
	return nil
}

func (m *mockGateway) Query(ctx context.Context, q domain.QueryRequest) (domain.QueryResult, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, q)
	}
	return domain.QueryResult{}, nil
}

// newTestClient wires a Client directly onto a mock gateway, bypassing New
// so no HTTP transport is constructed.
func newTestClient(t *testing.T, gw *mockGateway) *Client {
	t.Helper()
	return &Client{
		gateway: gw,
		library: libraryuc.New(gw),
		topK:    domain.DefaultTopK,
	}
}

func assistantReply(conversationID, answer string, sources ...domain.Source) domain.QueryResult {
	return domain.QueryResult{
		Answer:         answer,
		Sources:        sources,
		ConversationID: conversationID,
	}
}

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}
