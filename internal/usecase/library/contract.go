package library

import (
	"context"
	"io"

	"github.com/docuchat/docuchat-go/internal/domain"
)

// Gateway is the remote ingestion/listing surface the library drives.
type Gateway interface {
	UploadPDF(ctx context.Context, r io.Reader, filename string) (domain.UploadReceipt, error)
	ListFiles(ctx context.Context) ([]domain.Document, error)
}
