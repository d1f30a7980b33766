package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/repository/memory"
	"fittrack/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPhotoFixture() (PhotoService, repository.PhotoRepository) {
	photos := memory.NewMemoryPhotoRepository()
	svc := NewPhotoService(photos, storage.NewMemoryStorage(), storage.NewKeyGenerator())
	return svc, photos
}

func TestRequestUploadRejectsInvalidPhotoType(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	for _, photoType := range []string{"top", "FRONT", "selfie", "frontal"} {
		_, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoType(photoType), "2026-08-01", "")
		require.Error(t, err, "photo type %q must be rejected", photoType)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}

	// Rejection happens before any side effect.
	stored, err := photos.ListByOwner(context.Background(), ownerID, "")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRequestUploadRejectsMissingFields(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	_, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "", "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.RequestUpload(context.Background(), ownerID, "", "2026-08-01", "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	stored, err := photos.ListByOwner(context.Background(), ownerID, "")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRequestUploadCreatesPendingRecord(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeSide, "2026-08-15", "week 12")
	require.NoError(t, err)
	require.NotEmpty(t, intent.PhotoID)
	require.NotEmpty(t, intent.UploadURL)

	// The write URL is bounded to one hour.
	assert.WithinDuration(t, time.Now().Add(time.Hour), intent.ExpiresAt, time.Minute)

	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	photo, err := photos.GetByIDAndOwner(context.Background(), photoID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhotoTypeSide, photo.PhotoType)
	assert.Equal(t, "2026-08-15", photo.PhotoDate)
	assert.Equal(t, "week 12", photo.Notes)
	assert.NotEmpty(t, photo.ObjectKey)
	assert.Nil(t, photo.AccessURLExpiresAt, "no access URL has been minted yet")
}

func TestRequestUploadKeysNeverRepeat(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "2026-08-15", "")
		require.NoError(t, err)

		photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
		require.NoError(t, err)
		photo, err := photos.GetByIDAndOwner(context.Background(), photoID, ownerID)
		require.NoError(t, err)

		_, dup := seen[photo.ObjectKey]
		require.False(t, dup, "object key %q issued twice", photo.ObjectKey)
		seen[photo.ObjectKey] = struct{}{}
	}
}

// failingStorage rejects every presign request.
type failingStorage struct{}

func (failingStorage) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", errors.New("credentials rejected")
}

func (failingStorage) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("credentials rejected")
}

func (failingStorage) DeleteObject(context.Context, string) error {
	return errors.New("credentials rejected")
}

func TestRequestUploadStorageFailurePreventsRecord(t *testing.T) {
	photos := memory.NewMemoryPhotoRepository()
	svc := NewPhotoService(photos, failingStorage{}, storage.NewKeyGenerator())
	ownerID := primitive.NewObjectID()

	_, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "2026-08-15", "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))

	stored, err := photos.ListByOwner(context.Background(), ownerID, "")
	require.NoError(t, err)
	assert.Empty(t, stored, "a storage failure must not leave a record behind")
}

func TestGetAccessURLNeverRevealsOwnership(t *testing.T) {
	svc, _ := newPhotoFixture()
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerA, domain.PhotoTypeBack, "2026-08-15", "")
	require.NoError(t, err)
	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	// Someone else's photo and a nonexistent photo answer identically.
	_, errForeign := svc.GetAccessURL(context.Background(), ownerB, photoID)
	_, errMissing := svc.GetAccessURL(context.Background(), ownerB, primitive.NewObjectID())

	require.Error(t, errForeign)
	require.Error(t, errMissing)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(errForeign))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(errMissing))
	assert.Equal(t, errForeign.Error(), errMissing.Error())
}

func TestGetAccessURLMintsAndCaches(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "2026-08-15", "")
	require.NoError(t, err)
	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	accessURL, err := svc.GetAccessURL(context.Background(), ownerID, photoID)
	require.NoError(t, err)
	require.NotEmpty(t, accessURL.SignedURL)

	// The read URL is bounded to 24 hours.
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), accessURL.ExpiresAt, time.Minute)

	photo, err := photos.GetByIDAndOwner(context.Background(), photoID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, accessURL.SignedURL, photo.CachedAccessURL)
	require.NotNil(t, photo.AccessURLExpiresAt)
	assert.WithinDuration(t, accessURL.ExpiresAt, *photo.AccessURLExpiresAt, time.Second)
}

// uncacheablePhotoRepo fails every cache update and counts the attempts.
type uncacheablePhotoRepo struct {
	repository.PhotoRepository
	attempts int
}

func (r *uncacheablePhotoRepo) UpdateAccessURL(context.Context, primitive.ObjectID, primitive.ObjectID, string, time.Time) error {
	r.attempts++
	return errors.New("connection reset")
}

func TestGetAccessURLCacheFailureIsSwallowed(t *testing.T) {
	inner := memory.NewMemoryPhotoRepository()
	photos := &uncacheablePhotoRepo{PhotoRepository: inner}
	svc := NewPhotoService(photos, storage.NewMemoryStorage(), storage.NewKeyGenerator())
	ownerID := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "2026-08-15", "")
	require.NoError(t, err)
	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	// The minted URL is already valid; failing to persist the cache must
	// not downgrade the response.
	accessURL, err := svc.GetAccessURL(context.Background(), ownerID, photoID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessURL.SignedURL)
	assert.Equal(t, 1, photos.attempts)
}

func TestGetAccessURLConcurrentMintsCoexist(t *testing.T) {
	svc, _ := newPhotoFixture()
	ownerID := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeFront, "2026-08-15", "")
	require.NoError(t, err)
	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	const callers = 4
	results := make([]*AccessURL, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetAccessURL(context.Background(), ownerID, photoID)
		}(i)
	}
	wg.Wait()

	seen := map[string]struct{}{}
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		// Each mint stands alone; none invalidates another.
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), results[i].ExpiresAt, time.Minute)
		seen[results[i].SignedURL] = struct{}{}
	}
	assert.Len(t, seen, callers, "every caller gets its own URL")
}

func TestDeletePhoto(t *testing.T) {
	svc, photos := newPhotoFixture()
	ownerID := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	intent, err := svc.RequestUpload(context.Background(), ownerID, domain.PhotoTypeCustom, "2026-08-15", "")
	require.NoError(t, err)
	photoID, err := primitive.ObjectIDFromHex(intent.PhotoID)
	require.NoError(t, err)

	err = svc.DeletePhoto(context.Background(), stranger, photoID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, svc.DeletePhoto(context.Background(), ownerID, photoID))

	_, err = photos.GetByIDAndOwner(context.Background(), photoID, ownerID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
