// Package ragapi is the HTTP adapter to the remote query/conversation
// service. It is the sole point of network I/O: every call is a single
// round-trip, surfaced verbatim as one of the domain error kinds. No retries.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/domain"
	"github.com/docuchat/docuchat-go/internal/logger"
)

const defaultTimeout = 60 * time.Second

// Client talks to the RAG document-QA service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the adapter settings.
type Config struct {
	BaseURL string
	Timeout time.Duration // applied uniformly; expiry surfaces as ErrTransport
	Client  *http.Client  // optional; Timeout is ignored when set
	Logger  *zap.Logger
}

// New creates a service client.
func New(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ragapi: base URL is required")
	}
	httpClient := cfg.Client
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  cfg.Logger,
	}, nil
}

// log resolves the adapter logger, falling back to a context-scoped one.
func (c *Client) log(ctx context.Context) *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logger.FromContext(ctx)
}

// UploadPDF uploads a PDF as a multipart form and returns the server receipt.
func (c *Client) UploadPDF(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("upload pdf: %w", err)
	}
	if _, err = io.Copy(part, r); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("upload pdf: %w", err)
	}
	if err = mw.Close(); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("upload pdf: %w", err)
	}

	var resp uploadResponse
	if err = c.do(ctx, http.MethodPost, "/upload_pdf", mw.FormDataContentType(), &body, &resp); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("upload pdf: %w", err)
	}
	return resp.toDomain(), nil
}

// ListFiles enumerates all ingested documents.
func (c *Client) ListFiles(ctx context.Context) ([]domain.Document, error) {
	var resp listFilesResponse
	if err := c.do(ctx, http.MethodGet, "/list_files", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return resp.toDomain(), nil
}

// CreateConversation creates a conversation, optionally bound to a document.
// An empty documentID binds it to all documents.
func (c *Client) CreateConversation(ctx context.Context, documentID string) (string, error) {
	req := createConversationRequest{FileUUID: nullable(documentID)}
	var resp createConversationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/conversations", req, &resp); err != nil {
		return "", fmt.Errorf("create conversation: %w", err)
	}
	return resp.ConversationID, nil
}

// ListConversations lists conversation summaries, optionally filtered by
// document. The server orders them by recency; the order is preserved.
func (c *Client) ListConversations(ctx context.Context, documentID string) ([]domain.Conversation, error) {
	path := "/conversations"
	if documentID != "" {
		path += "?file_uuid=" + url.QueryEscape(documentID)
	}
	var resp listConversationsResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return resp.toDomain()
}

// GetConversation fetches the full message history of a conversation.
func (c *Client) GetConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var resp conversationDetailResponse
	path := "/conversations/" + url.PathEscape(conversationID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return resp.toDomain()
}

// DeleteConversation removes a conversation and its messages.
// Deleting an unknown id returns ErrNotFound; callers that treat double
// deletion as benign check for it.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	path := "/conversations/" + url.PathEscape(conversationID)
	if err := c.do(ctx, http.MethodDelete, path, "", nil, &struct{}{}); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

// Query submits a scoped question and returns the generated answer with its
// source attributions. When the request carries no conversation id the server
// creates one implicitly and the result names it.
func (c *Client) Query(ctx context.Context, q domain.QueryRequest) (domain.QueryResult, error) {
	req := queryRequest{
		Query:          q.Text,
		K:              q.TopK,
		FileUUID:       nullable(q.DocumentID),
		ConversationID: nullable(q.ConversationID),
	}
	var resp queryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/query_file", req, &resp); err != nil {
		return domain.QueryResult{}, fmt.Errorf("query: %w", err)
	}
	return resp.toDomain(), nil
}

// doJSON marshals body as JSON and performs the round-trip.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(data), out)
}

// do performs a single round-trip and decodes the JSON response into out.
// Network failures wrap ErrTransport; non-2xx statuses are classified by
// domain.NewAPIError with the FastAPI detail field extracted when present.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log := c.log(ctx)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return domain.NewAPIError(resp.StatusCode, extractDetail(data))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrTransport, err)
	}
	return nil
}

// extractDetail extracts the "detail" field from a JSON error body
// (FastAPI error format). Falls back to the raw body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(body))
}

// nullable maps an empty string to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
