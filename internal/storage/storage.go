package storage

import (
	"context"
	"time"
)

// Expiry windows baked into the presigned URLs. Enforcement happens at the
// object store; these only bound how long a handed-out URL stays usable.
const (
	// UploadURLExpiry bounds the write URL issued at upload-intent time.
	UploadURLExpiry = 1 * time.Hour
	// DownloadURLExpiry bounds the read URL issued on access.
	DownloadURLExpiry = 24 * time.Hour
)

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT
	// of an object with the given key directly to the storage provider,
	// constrained to the given content type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows a GET
	// of the object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
