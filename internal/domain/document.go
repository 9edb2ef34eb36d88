package domain

// Document is a reference to an ingested file. Created by ingestion on the
// server; this side only enumerates it.
type Document struct {
	ID     string
	Name   string
	Chunks int // informational only
}

// UploadReceipt is the server's acknowledgement of a successful upload.
type UploadReceipt struct {
	ID            string
	Filename      string
	Size          int64
	ChunksCreated int
}
