package storage

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStorage is an in-process FileStorage double. It mints fake signed
// URLs and remembers which keys have been handed out, so tests and local
// development can run without an object store.
type memoryStorage struct {
	mu     sync.Mutex
	issued map[string]int // objectKey -> number of URLs minted
}

// NewMemoryStorage returns an in-memory FileStorage.
func NewMemoryStorage() FileStorage {
	return &memoryStorage{issued: make(map[string]int)}
}

func (m *memoryStorage) GeneratePresignedUploadURL(_ context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	return m.signedURL(objectKey, "put", expires), nil
}

func (m *memoryStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	return m.signedURL(objectKey, "get", expires), nil
}

func (m *memoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.issued, objectKey)
	return nil
}

func (m *memoryStorage) signedURL(objectKey, verb string, expires time.Duration) string {
	m.mu.Lock()
	m.issued[objectKey]++
	m.mu.Unlock()
	return fmt.Sprintf("https://storage.invalid/%s?verb=%s&expires=%d&sig=%s",
		url.PathEscape(objectKey), verb, int64(expires.Seconds()), uuid.NewString())
}
