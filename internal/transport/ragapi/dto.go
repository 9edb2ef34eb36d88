package ragapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/docuchat-go/internal/domain"
	"github.com/docuchat/docuchat-go/internal/timeutil"
)

// Wire shapes of the service contract. Loosely typed on the wire; the
// converters map them to the closed domain variants.

type uploadResponse struct {
	Message          string `json:"message"`
	UUID             string `json:"uuid"`
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path"`
	FileSize         int64  `json:"file_size"`
	ChunksCreated    int    `json:"chunks_created"`
}

func (r uploadResponse) toDomain() domain.UploadReceipt {
	return domain.UploadReceipt{
		ID:            r.UUID,
		Filename:      r.OriginalFilename,
		Size:          r.FileSize,
		ChunksCreated: r.ChunksCreated,
	}
}

type fileInfo struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

type listFilesResponse struct {
	TotalFiles int        `json:"total_files"`
	Files      []fileInfo `json:"files"`
}

func (r listFilesResponse) toDomain() []domain.Document {
	docs := make([]domain.Document, len(r.Files))
	for i, f := range r.Files {
		docs[i] = domain.Document{ID: f.FileID, Name: f.Filename, Chunks: f.Chunks}
	}
	return docs
}

type createConversationRequest struct {
	FileUUID *string `json:"file_uuid"`
}

type createConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type conversationDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	FileUUID  *string `json:"file_uuid"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type listConversationsResponse struct {
	Conversations []conversationDTO `json:"conversations"`
}

func (r listConversationsResponse) toDomain() ([]domain.Conversation, error) {
	out := make([]domain.Conversation, len(r.Conversations))
	for i, c := range r.Conversations {
		createdAt, err := timeutil.Parse(c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: conversation %s created_at: %w", domain.ErrTransport, c.ID, err)
		}
		updatedAt, err := timeutil.Parse(c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: conversation %s updated_at: %w", domain.ErrTransport, c.ID, err)
		}
		out[i] = domain.Conversation{
			ID:         c.ID,
			Title:      c.Title,
			DocumentID: deref(c.FileUUID),
			CreatedAt:  createdAt,
			UpdatedAt:  updatedAt,
		}
	}
	return out, nil
}

type sourceDTO struct {
	Content  string `json:"content"`
	Metadata struct {
		Page   *int    `json:"page"`
		Source *string `json:"source"`
	} `json:"metadata"`
	Score float64 `json:"score"`
}

func (s sourceDTO) toDomain() domain.Source {
	src := domain.Source{Content: s.Content, Score: s.Score}
	if s.Metadata.Page != nil {
		src.Page = *s.Metadata.Page
	}
	if s.Metadata.Source != nil {
		src.DocumentID = *s.Metadata.Source
	}
	return src
}

type messageDTO struct {
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Sources   []sourceDTO `json:"sources"`
	CreatedAt *string     `json:"created_at"`
}

func (m messageDTO) toDomain() (domain.Message, error) {
	var sources []domain.Source
	for _, s := range m.Sources {
		sources = append(sources, s.toDomain())
	}
	var createdAt time.Time
	if m.CreatedAt != nil && *m.CreatedAt != "" {
		var err error
		if createdAt, err = timeutil.Parse(*m.CreatedAt); err != nil {
			return domain.Message{}, fmt.Errorf("created_at: %w", err)
		}
	}
	// The server does not assign message ids; a local one keeps the
	// in-memory sequence addressable.
	return domain.NewMessage(uuid.NewString(), domain.Role(m.Role), m.Content, sources, createdAt)
}

type conversationDetailResponse struct {
	ConversationID string       `json:"conversation_id"`
	Messages       []messageDTO `json:"messages"`
}

func (r conversationDetailResponse) toDomain() ([]domain.Message, error) {
	out := make([]domain.Message, len(r.Messages))
	for i, m := range r.Messages {
		msg, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: message %d: %w", domain.ErrTransport, i, err)
		}
		out[i] = msg
	}
	return out, nil
}

type queryRequest struct {
	Query          string  `json:"query"`
	K              int     `json:"k"`
	FileUUID       *string `json:"file_uuid"`
	ConversationID *string `json:"conversation_id"`
}

type queryResponse struct {
	Query          string      `json:"query"`
	Answer         string      `json:"answer"`
	Sources        []sourceDTO `json:"sources"`
	NumSources     int         `json:"num_sources"`
	ConversationID string      `json:"conversation_id"`
}

func (r queryResponse) toDomain() domain.QueryResult {
	sources := make([]domain.Source, len(r.Sources))
	for i, s := range r.Sources {
		sources[i] = s.toDomain()
	}
	return domain.QueryResult{
		Query:          r.Query,
		Answer:         r.Answer,
		Sources:        sources,
		ConversationID: r.ConversationID,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
