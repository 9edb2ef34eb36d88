// Package library handles document upload and enumeration. Documents are
// created by server-side ingestion and never mutated from here.
package library

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Service is the document library.
type Service struct {
	gateway Gateway
}

// New creates a library service.
func New(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Upload sends a PDF to be ingested. The server rejects anything but PDF
// with a validation error; the extension is checked here first to spare the
// round-trip.
func (s *Service) Upload(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return domain.UploadReceipt{}, fmt.Errorf("%w: only PDF files are allowed", domain.ErrInvalidInput)
	}
	receipt, err := s.gateway.UploadPDF(ctx, r, filename)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("upload document: %w", err)
	}
	return receipt, nil
}

// List enumerates all ingested documents.
func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.gateway.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
