package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewMessage_HumanWithSourcesRejected(t *testing.T) {
	_, err := NewMessage("m1", RoleHuman, "hi", []Source{{Content: "x", Score: 0.5}}, time.Now())
	if err == nil {
		t.Fatal("expected error for human message with sources")
	}
}

func TestNewMessage_AssistantWithSources(t *testing.T) {
	msg, err := NewMessage("m1", RoleAssistant, "answer", []Source{{Content: "x", Score: 0.87, Page: 2}}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msg.Sources) != 1 || msg.Sources[0].Score != 0.87 {
		t.Errorf("sources not carried through: %+v", msg.Sources)
	}
}

func TestNewMessage_UnknownRole(t *testing.T) {
	_, err := NewMessage("m1", Role("system"), "nope", nil, time.Time{})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewAPIError_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", 404, ErrNotFound},
		{"bad request", 400, ErrInvalidInput},
		{"unprocessable", 422, ErrInvalidInput},
		{"server error", 500, ErrTransport},
		{"bad gateway", 502, ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.status, "detail")
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: got %v, want sentinel %v", tt.status, err, tt.want)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatal("expected *APIError")
			}
			if apiErr.Status != tt.status || apiErr.Detail != "detail" {
				t.Errorf("fields not carried: %+v", apiErr)
			}
		})
	}
}

func TestConversation_DisplayTitle(t *testing.T) {
	if got := (Conversation{Title: "Budget questions"}).DisplayTitle(); got != "Budget questions" {
		t.Errorf("got %q", got)
	}
	if got := (Conversation{}).DisplayTitle(); got != DefaultTitle {
		t.Errorf("got %q, want default", got)
	}
}
