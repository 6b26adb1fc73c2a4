package service

import (
	"context"
	"io"
)

// ReceiptStorage defines the interface for storing receipt images in object
// storage. Keys never collide, so an upload can never overwrite an earlier
// receipt.
type ReceiptStorage interface {
	// Upload stores one receipt image and returns its publicly resolvable URL.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
