package service

import (
	"context"
	"errors"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileInput is the editable part of a user profile.
type ProfileInput struct {
	HeightCm      float64
	BirthDate     string
	Gender        string
	ActivityLevel string
	Goals         []string
}

// ProfileService reads and writes the per-user profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No profile saved yet; return an empty one rather than 404.
			return &domain.Profile{UserID: userID}, nil
		}
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to load profile", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error) {
	if input.HeightCm != 0 && (input.HeightCm < 100 || input.HeightCm > 250) {
		return nil, apperror.New(apperror.KindValidation, "height must be between 100 and 250 cm")
	}

	profile := &domain.Profile{
		UserID:        userID,
		HeightCm:      input.HeightCm,
		BirthDate:     input.BirthDate,
		Gender:        input.Gender,
		ActivityLevel: input.ActivityLevel,
		Goals:         input.Goals,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to save profile", err)
	}
	return profile, nil
}
