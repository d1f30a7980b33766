package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryPhotoRepository implements repository.PhotoRepository in memory.
type memoryPhotoRepository struct {
	mu     sync.RWMutex
	photos map[primitive.ObjectID]domain.ProgressPhoto
	keys   map[string]struct{} // enforces objectKey uniqueness like the mongo index
}

// NewMemoryPhotoRepository creates an in-memory photo repository.
func NewMemoryPhotoRepository() repository.PhotoRepository {
	return &memoryPhotoRepository{
		photos: make(map[primitive.ObjectID]domain.ProgressPhoto),
		keys:   make(map[string]struct{}),
	}
}

func (r *memoryPhotoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	if photo.OwnerID == primitive.NilObjectID || photo.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("photo requires ownerId and objectKey")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[photo.ObjectKey]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}

	now := time.Now().UTC()
	photo.ID = primitive.NewObjectID()
	photo.CreatedAt = now
	photo.UpdatedAt = now

	r.photos[photo.ID] = *photo
	r.keys[photo.ObjectKey] = struct{}{}
	return photo.ID, nil
}

func (r *memoryPhotoRepository) GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.ProgressPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photo, ok := r.photos[id]
	if !ok || photo.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := photo
	return &copied, nil
}

func (r *memoryPhotoRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType) ([]domain.ProgressPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photos := []domain.ProgressPhoto{}
	for _, p := range r.photos {
		if p.OwnerID != ownerID {
			continue
		}
		if photoType != "" && p.PhotoType != photoType {
			continue
		}
		photos = append(photos, p)
	}
	// Newest first, matching the mongo sort.
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})
	return photos, nil
}

func (r *memoryPhotoRepository) UpdateAccessURL(ctx context.Context, id, ownerID primitive.ObjectID, signedURL string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	photo, ok := r.photos[id]
	if !ok || photo.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	photo.CachedAccessURL = signedURL
	photo.AccessURLExpiresAt = &expiresAt
	photo.UpdatedAt = time.Now().UTC()
	r.photos[id] = photo
	return nil
}

func (r *memoryPhotoRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	photo, ok := r.photos[id]
	if !ok || photo.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.photos, id)
	delete(r.keys, photo.ObjectKey)
	return nil
}
