// Package storage wraps the external object store that holds post and
// profile images.
package storage

import (
	"context"
	"io"
)

// UploadResult identifies a stored object: the public URL callers embed and
// the storage identifier needed to release the object later.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Storage is the object-storage collaborator
type Storage interface {
	Upload(ctx context.Context, r io.Reader, contentType string) (*UploadResult, error)
	Release(ctx context.Context, publicID string) error
}
