package docuchat

import "github.com/docuchat/docuchat-go/internal/domain"

func fromInternalDocument(d domain.Document) Document {
	return Document{ID: d.ID, Name: d.Name, Chunks: d.Chunks}
}

func fromInternalReceipt(r domain.UploadReceipt) UploadReceipt {
	return UploadReceipt{
		ID:            r.ID,
		Filename:      r.Filename,
		Size:          r.Size,
		ChunksCreated: r.ChunksCreated,
	}
}

func fromInternalConversation(c domain.Conversation) Conversation {
	return Conversation{
		ID:         c.ID,
		Title:      c.Title,
		DocumentID: c.DocumentID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toInternalConversation(c Conversation) domain.Conversation {
	return domain.Conversation{
		ID:         c.ID,
		Title:      c.Title,
		DocumentID: c.DocumentID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func fromInternalSources(in []domain.Source) []Source {
	if len(in) == 0 {
		return nil
	}
	out := make([]Source, len(in))
	for i, s := range in {
		out[i] = Source{Content: s.Content, Score: s.Score, Page: s.Page, DocumentID: s.DocumentID}
	}
	return out
}

func fromInternalMessage(m domain.Message) Message {
	return Message{
		ID:        m.ID,
		Role:      Role(m.Role),
		Content:   m.Content,
		Sources:   fromInternalSources(m.Sources),
		CreatedAt: m.CreatedAt,
	}
}

func fromInternalMessages(in []domain.Message) []Message {
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = fromInternalMessage(m)
	}
	return out
}

func fromInternalConversations(in []domain.Conversation) []Conversation {
	out := make([]Conversation, len(in))
	for i, c := range in {
		out[i] = fromInternalConversation(c)
	}
	return out
}
