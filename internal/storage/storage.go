package storage

import (
	"context"
	"io"
)

// ObjectStore abstracts the blob backend holding product images, AR models
// and QR codes. Keys are slash-separated paths relative to the store root.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns the address where the object can be fetched by clients.
	URL(key string) string
}
