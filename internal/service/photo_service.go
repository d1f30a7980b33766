package service

import (
	"context"
	"errors"
	"log"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadIntent is the result of an upload request: a placeholder record id
// and a time-bounded write URL. The caller performs the byte transfer
// itself; the service never learns whether it happened.
type UploadIntent struct {
	PhotoID   string    `json:"photo_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessURL is a time-bounded read URL for an existing photo.
type AccessURL struct {
	SignedURL string    `json:"signed_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PhotoService brokers presigned storage URLs for progress photos and owns
// their metadata lifecycle.
type PhotoService interface {
	// RequestUpload validates the request, creates a pending photo record
	// and returns a presigned write URL for its object key.
	RequestUpload(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType, photoDate, notes string) (*UploadIntent, error)

	// GetAccessURL returns a fresh presigned read URL for a photo the
	// caller owns, caching it on the record best-effort.
	GetAccessURL(ctx context.Context, ownerID, photoID primitive.ObjectID) (*AccessURL, error)

	ListPhotos(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType) ([]domain.ProgressPhoto, error)
	DeletePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID) error
}

type photoService struct {
	photos repository.PhotoRepository
	files  storage.FileStorage
	keys   *storage.KeyGenerator
	now    func() time.Time
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(photos repository.PhotoRepository, files storage.FileStorage, keys *storage.KeyGenerator) PhotoService {
	return &photoService{
		photos: photos,
		files:  files,
		keys:   keys,
		now:    time.Now,
	}
}

func (s *photoService) RequestUpload(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType, photoDate, notes string) (*UploadIntent, error) {
	if ownerID == primitive.NilObjectID {
		return nil, apperror.New(apperror.KindAuth, "Unauthorized")
	}
	if photoType == "" || photoDate == "" {
		return nil, apperror.New(apperror.KindValidation, "Missing required fields: photo_type, photo_date")
	}
	if !photoType.Valid() {
		return nil, apperror.New(apperror.KindValidation, "Invalid photo_type. Must be one of: front, side, back, custom")
	}

	objectKey := s.keys.PhotoKey(ownerID.Hex())

	// Presign before touching the database so a storage failure never
	// leaves a record behind. The reverse (row written, upload never
	// happens) is a tolerated terminal state.
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, "image/*", storage.UploadURLExpiry)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "Failed to generate upload URL", err)
	}
	expiresAt := s.now().UTC().Add(storage.UploadURLExpiry)

	photo := &domain.ProgressPhoto{
		OwnerID:         ownerID,
		ObjectKey:       objectKey,
		PhotoType:       photoType,
		PhotoDate:       photoDate,
		Notes:           notes,
		UploadExpiresAt: expiresAt,
	}

	photoID, err := s.photos.Create(ctx, photo)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to create photo record", err)
	}

	return &UploadIntent{
		PhotoID:   photoID.Hex(),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *photoService) GetAccessURL(ctx context.Context, ownerID, photoID primitive.ObjectID) (*AccessURL, error) {
	photo, err := s.photos.GetByIDAndOwner(ctx, photoID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Never reveal whether the photo exists for someone else.
			return nil, apperror.New(apperror.KindNotFound, "Photo not found or access denied")
		}
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to load photo record", err)
	}

	signedURL, err := s.files.GeneratePresignedDownloadURL(ctx, photo.ObjectKey, storage.DownloadURLExpiry)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "Failed to generate photo URL", err)
	}
	expiresAt := s.now().UTC().Add(storage.DownloadURLExpiry)

	// Best effort: the minted URL is valid regardless, so a cache write
	// failure must not fail the request.
	if err := s.photos.UpdateAccessURL(ctx, photoID, ownerID, signedURL, expiresAt); err != nil {
		log.Printf("WARN: failed to cache access URL for photo %s: %v", photoID.Hex(), err)
	}

	return &AccessURL{
		SignedURL: signedURL,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *photoService) ListPhotos(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType) ([]domain.ProgressPhoto, error) {
	if photoType != "" && !photoType.Valid() {
		return nil, apperror.New(apperror.KindValidation, "Invalid photo_type. Must be one of: front, side, back, custom")
	}
	photos, err := s.photos.ListByOwner(ctx, ownerID, photoType)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to list photos", err)
	}
	return photos, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID) error {
	photo, err := s.photos.GetByIDAndOwner(ctx, photoID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.KindNotFound, "Photo not found or access denied")
		}
		return apperror.Wrap(apperror.KindPersistence, "Failed to load photo record", err)
	}

	if err := s.photos.Delete(ctx, photoID, ownerID); err != nil {
		return apperror.Wrap(apperror.KindPersistence, "Failed to delete photo record", err)
	}

	// Object cleanup is best effort; the row is authoritative.
	if err := s.files.DeleteObject(ctx, photo.ObjectKey); err != nil {
		log.Printf("WARN: failed to delete object %q for photo %s: %v", photo.ObjectKey, photoID.Hex(), err)
	}
	return nil
}
