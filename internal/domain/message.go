package domain

import (
	"fmt"
	"time"
)

// Role distinguishes the two message kinds. Closed set: the wire format is
// loosely typed, but internally a message is exactly human or assistant.
type Role string

const (
	// RoleHuman is a user utterance.
	RoleHuman Role = "human"
	// RoleAssistant is a generated answer.
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is one of the two supported kinds.
func (r Role) IsValid() bool {
	return r == RoleHuman || r == RoleAssistant
}

// Source is a scored excerpt attached to an assistant message, citing its
// origin. Immutable once attached.
type Source struct {
	Content    string
	Score      float64 // higher is more relevant, conventionally a fraction
	Page       int     // 0 when unknown
	DocumentID string  // empty when unknown
}

// Message is one turn of a conversation. Human messages never carry sources;
// NewMessage enforces this, so a Message built through it is always valid.
type Message struct {
	ID        string // client-local identity, stable across reconciliation
	Role      Role
	Content   string
	Sources   []Source
	CreatedAt time.Time
}

// NewMessage validates and creates a Message.
func NewMessage(id string, role Role, content string, sources []Source, createdAt time.Time) (Message, error) {
	if !role.IsValid() {
		return Message{}, fmt.Errorf("invalid message role: %q", role)
	}
	if role == RoleHuman && len(sources) > 0 {
		return Message{}, fmt.Errorf("human message must not carry sources")
	}
	return Message{
		ID:        id,
		Role:      role,
		Content:   content,
		Sources:   sources,
		CreatedAt: createdAt,
	}, nil
}
