package repository

import (
	"context"
	"time"

	"fittrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores the single per-user profile.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
}

// PhotoRepository defines the interface for progress photo metadata.
// Every read and mutation is ownership-filtered: a photo that exists but
// belongs to someone else behaves exactly like one that does not exist.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.ProgressPhoto, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, photoType domain.PhotoType) ([]domain.ProgressPhoto, error)
	UpdateAccessURL(ctx context.Context, id, ownerID primitive.ObjectID, signedURL string, expiresAt time.Time) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// WeightRepository stores weigh-ins. List is ascending by entry date; zero
// from/to values leave that side of the range unbounded.
type WeightRepository interface {
	Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.WeightEntry, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// MeasurementRepository stores body measurements, ascending by date.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.BodyMeasurement, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// WorkoutRepository stores workouts, ascending by date.
type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) (primitive.ObjectID, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	SetCompleted(ctx context.Context, id, ownerID primitive.ObjectID, completed bool) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}
