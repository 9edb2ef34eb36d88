package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// --- Mocks ---

type mockGateway struct {
	listFn   func(ctx context.Context, documentID string) ([]domain.Conversation, error)
	deleteFn func(ctx context.Context, conversationID string) error

	listCalls   []string
	deleteCalls []string
}

func (m *mockGateway) ListConversations(ctx context.Context, documentID string) ([]domain.Conversation, error) {
	m.listCalls = append(m.listCalls, documentID)
	if m.listFn != nil {
		return m.listFn(ctx, documentID)
	}
	return nil, nil
}

func (m *mockGateway) DeleteConversation(ctx context.Context, conversationID string) error {
	m.deleteCalls = append(m.deleteCalls, conversationID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, conversationID)
	}
	return nil
}

type mockScope struct {
	convID       string
	newConvCalls int
}

func (m *mockScope) ActiveConversationID() (string, bool) { return m.convID, m.convID != "" }
func (m *mockScope) StartNewConversation() {
	m.newConvCalls++
	m.convID = ""
}

// --- Tests ---

func TestRefresh_ReplacesListWholesale(t *testing.T) {
	gw := &mockGateway{
		listFn: func(_ context.Context, documentID string) ([]domain.Conversation, error) {
			if documentID == "D1" {
				return []domain.Conversation{{ID: "c1", DocumentID: "D1"}}, nil
			}
			return []domain.Conversation{{ID: "c1"}, {ID: "c2"}}, nil
		},
	}
	svc := New(gw, &mockScope{})
	ctx := context.Background()

	if err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := svc.Conversations(); len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}

	if err := svc.Refresh(ctx, "D1"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := svc.Conversations()
	if len(got) != 1 || got[0].DocumentID != "D1" {
		t.Errorf("filtered refresh: %+v", got)
	}
}

func TestRefresh_FailureKeepsList(t *testing.T) {
	gw := &mockGateway{}
	svc := New(gw, &mockScope{})
	ctx := context.Background()

	gw.listFn = func(context.Context, string) ([]domain.Conversation, error) {
		return []domain.Conversation{{ID: "c1"}}, nil
	}
	if err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	gw.listFn = func(context.Context, string) ([]domain.Conversation, error) {
		return nil, fmt.Errorf("list: %w", domain.ErrTransport)
	}
	if err := svc.Refresh(ctx, ""); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if got := svc.Conversations(); len(got) != 1 {
		t.Errorf("held list must survive a failed refresh, got %+v", got)
	}
}

func TestRemove_DeletesAndRefreshes(t *testing.T) {
	gw := &mockGateway{}
	sc := &mockScope{convID: "other"}
	svc := New(gw, sc)
	ctx := context.Background()

	if err := svc.Refresh(ctx, "D1"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := svc.Remove(ctx, "c1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if len(gw.deleteCalls) != 1 || gw.deleteCalls[0] != "c1" {
		t.Errorf("delete calls = %v", gw.deleteCalls)
	}
	// Refresh after removal reuses the last filter.
	if len(gw.listCalls) != 2 || gw.listCalls[1] != "D1" {
		t.Errorf("list calls = %v", gw.listCalls)
	}
	if sc.newConvCalls != 0 {
		t.Error("removing a non-active conversation must not touch the scope")
	}
}

func TestRemove_ActiveConversationVacatesScope(t *testing.T) {
	gw := &mockGateway{}
	sc := &mockScope{convID: "c1"}
	svc := New(gw, sc)

	if err := svc.Remove(context.Background(), "c1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if sc.newConvCalls != 1 {
		t.Errorf("StartNewConversation calls = %d, want 1", sc.newConvCalls)
	}
}

func TestRemove_AlreadyDeletedIsBenign(t *testing.T) {
	gw := &mockGateway{
		deleteFn: func(context.Context, string) error {
			return fmt.Errorf("delete conversation: %w", domain.ErrNotFound)
		},
	}
	sc := &mockScope{convID: "c1"}
	svc := New(gw, sc)

	if err := svc.Remove(context.Background(), "c1"); err != nil {
		t.Fatalf("double deletion must be benign, got %v", err)
	}
	if len(gw.listCalls) != 1 {
		t.Error("refresh must still run after a benign deletion failure")
	}
	if sc.newConvCalls != 1 {
		t.Error("an already-deleted active conversation still vacates the scope")
	}
}

func TestRemove_TransportFailureSurfacesButRefreshes(t *testing.T) {
	gw := &mockGateway{
		deleteFn: func(context.Context, string) error {
			return fmt.Errorf("delete conversation: %w", domain.ErrTransport)
		},
	}
	sc := &mockScope{convID: "c1"}
	svc := New(gw, sc)

	err := svc.Remove(context.Background(), "c1")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(gw.listCalls) != 1 {
		t.Error("refresh runs unconditionally")
	}
	if sc.newConvCalls != 0 {
		t.Error("scope must stay put when the conversation may still exist")
	}
}
