package docuchat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/docuchat/docuchat-go/internal/domain"
	"github.com/docuchat/docuchat-go/internal/transport/ragapi"
	libraryuc "github.com/docuchat/docuchat-go/internal/usecase/library"
)

// gateway is the remote service surface, substituted in tests.
type gateway interface {
	UploadPDF(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error)
	ListFiles(ctx context.Context) ([]domain.Document, error)
	CreateConversation(ctx context.Context, documentID string) (string, error)
	ListConversations(ctx context.Context, documentID string) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	Query(ctx context.Context, q domain.QueryRequest) (domain.QueryResult, error)
}

type libraryUseCase interface {
	Upload(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error)
	List(ctx context.Context) ([]domain.Document, error)
}

// Client is the docuchat SDK entry point. It is stateless; conversation
// state lives on Sessions created from it.
type Client struct {
	gateway gateway
	library libraryUseCase
	topK    int
	obs     *observer
}

// New creates a docuchat Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{topK: domain.DefaultTopK}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("docuchat: service base URL required (use WithBaseURL)")
	}

	gw, err := ragapi.New(&ragapi.Config{
		BaseURL: cfg.baseURL,
		Timeout: cfg.timeout,
		Client:  cfg.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("docuchat: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		gateway: gw,
		library: libraryuc.New(gw),
		topK:    cfg.topK,
		obs:     obs,
	}, nil
}

// UploadDocument sends a PDF to be ingested and returns the server receipt.
// Non-PDF filenames fail with ErrInvalidInput before any network call.
func (c *Client) UploadDocument(ctx context.Context, r io.Reader, filename string) (_ UploadReceipt, err error) {
	start := time.Now()
	defer func() { c.obs.observe("document.upload", start, err) }()

	receipt, err := c.library.Upload(ctx, r, filename)
	if err != nil {
		return UploadReceipt{}, err
	}
	return fromInternalReceipt(receipt), nil
}

// ListDocuments enumerates all ingested documents.
func (c *Client) ListDocuments(ctx context.Context) (_ []Document, err error) {
	start := time.Now()
	defer func() { c.obs.observe("document.list", start, err) }()

	docs, err := c.library.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = fromInternalDocument(d)
	}
	return out, nil
}

// CreateConversation explicitly creates a conversation, optionally bound to
// a document (empty id binds it to all documents). Most callers rely on the
// implicit creation performed by the first SendMessage instead.
func (c *Client) CreateConversation(ctx context.Context, documentID string) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("conversation.create", start, err) }()

	id, err := c.gateway.CreateConversation(ctx, documentID)
	if err != nil {
		return "", err
	}
	return id, nil
}
