package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accepted ranges for body values, in the unit of each field. Anything
// outside is rejected before any row is written.
const (
	minWeightKg   = 30
	maxWeightKg   = 300
	minBodyFatPct = 3
	maxBodyFatPct = 50
	minMuscleKg   = 20
	maxMuscleKg   = 150
	maxNotesLen   = 500
)

// WeightInput is a weigh-in to record.
type WeightInput struct {
	WeightKg   float64
	BodyFatPct *float64
	EntryDate  time.Time
	Notes      string
}

// MeasurementInput is a set of body measurements to record.
type MeasurementInput struct {
	Date         time.Time
	Values       domain.BodyValues
	BodyFatPct   *float64
	MuscleMassKg *float64
	Notes        string
}

// MeasurementService records and serves weigh-ins and body measurements.
type MeasurementService interface {
	LogWeight(ctx context.Context, ownerID primitive.ObjectID, input WeightInput) (*domain.WeightEntry, error)
	ListWeights(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.WeightEntry, error)
	DeleteWeight(ctx context.Context, ownerID, id primitive.ObjectID) error

	LogMeasurement(ctx context.Context, ownerID primitive.ObjectID, input MeasurementInput) (*domain.BodyMeasurement, error)
	ListMeasurements(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.BodyMeasurement, error)
	DeleteMeasurement(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type measurementService struct {
	weights      repository.WeightRepository
	measurements repository.MeasurementRepository
	now          func() time.Time
}

// NewMeasurementService creates a new MeasurementService.
func NewMeasurementService(weights repository.WeightRepository, measurements repository.MeasurementRepository) MeasurementService {
	return &measurementService{
		weights:      weights,
		measurements: measurements,
		now:          time.Now,
	}
}

func (s *measurementService) LogWeight(ctx context.Context, ownerID primitive.ObjectID, input WeightInput) (*domain.WeightEntry, error) {
	if input.WeightKg < minWeightKg || input.WeightKg > maxWeightKg {
		return nil, apperror.New(apperror.KindValidation,
			fmt.Sprintf("weight must be between %d and %d kg", minWeightKg, maxWeightKg))
	}
	if err := checkOptionalRange(input.BodyFatPct, minBodyFatPct, maxBodyFatPct, "body fat percentage"); err != nil {
		return nil, err
	}
	if err := s.checkDate(input.EntryDate); err != nil {
		return nil, err
	}
	if len(input.Notes) > maxNotesLen {
		return nil, apperror.New(apperror.KindValidation, "notes cannot exceed 500 characters")
	}

	entry := &domain.WeightEntry{
		OwnerID:    ownerID,
		WeightKg:   input.WeightKg,
		BodyFatPct: input.BodyFatPct,
		EntryDate:  input.EntryDate,
		Notes:      input.Notes,
	}
	if _, err := s.weights.Create(ctx, entry); err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to save weight entry", err)
	}
	return entry, nil
}

func (s *measurementService) ListWeights(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.WeightEntry, error) {
	entries, err := s.weights.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to list weight entries", err)
	}
	return entries, nil
}

func (s *measurementService) DeleteWeight(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if err := s.weights.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.KindNotFound, "Weight entry not found")
		}
		return apperror.Wrap(apperror.KindPersistence, "Failed to delete weight entry", err)
	}
	return nil
}

func (s *measurementService) LogMeasurement(ctx context.Context, ownerID primitive.ObjectID, input MeasurementInput) (*domain.BodyMeasurement, error) {
	if err := s.checkDate(input.Date); err != nil {
		return nil, err
	}
	if err := checkBodyValues(input.Values); err != nil {
		return nil, err
	}
	if err := checkOptionalRange(input.BodyFatPct, minBodyFatPct, maxBodyFatPct, "body fat percentage"); err != nil {
		return nil, err
	}
	if err := checkOptionalRange(input.MuscleMassKg, minMuscleKg, maxMuscleKg, "muscle mass"); err != nil {
		return nil, err
	}
	if !hasAnyValue(input) {
		return nil, apperror.New(apperror.KindValidation, "at least one measurement value is required")
	}
	if len(input.Notes) > maxNotesLen {
		return nil, apperror.New(apperror.KindValidation, "notes cannot exceed 500 characters")
	}

	m := &domain.BodyMeasurement{
		OwnerID:      ownerID,
		Date:         input.Date,
		Values:       input.Values,
		BodyFatPct:   input.BodyFatPct,
		MuscleMassKg: input.MuscleMassKg,
		Notes:        input.Notes,
	}
	if _, err := s.measurements.Create(ctx, m); err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to save measurement", err)
	}
	return m, nil
}

func (s *measurementService) ListMeasurements(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.BodyMeasurement, error) {
	measurements, err := s.measurements.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to list measurements", err)
	}
	return measurements, nil
}

func (s *measurementService) DeleteMeasurement(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if err := s.measurements.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.KindNotFound, "Measurement not found")
		}
		return apperror.Wrap(apperror.KindPersistence, "Failed to delete measurement", err)
	}
	return nil
}

func (s *measurementService) checkDate(date time.Time) error {
	if date.IsZero() {
		return apperror.New(apperror.KindValidation, "date is required")
	}
	if date.After(s.now()) {
		return apperror.New(apperror.KindValidation, "date cannot be in the future")
	}
	return nil
}

func checkOptionalRange(v *float64, min, max float64, field string) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return apperror.New(apperror.KindValidation,
			fmt.Sprintf("%s must be between %g and %g", field, min, max))
	}
	return nil
}

// checkBodyValues applies the per-site cm bounds.
func checkBodyValues(v domain.BodyValues) error {
	checks := []struct {
		value    *float64
		min, max float64
		field    string
	}{
		{v.Chest, 50, 200, "chest"},
		{v.Waist, 40, 200, "waist"},
		{v.Hips, 50, 200, "hips"},
		{v.LeftArm, 15, 60, "left arm"},
		{v.RightArm, 15, 60, "right arm"},
		{v.LeftThigh, 30, 100, "left thigh"},
		{v.RightThigh, 30, 100, "right thigh"},
		{v.Neck, 25, 60, "neck"},
	}
	for _, c := range checks {
		if err := checkOptionalRange(c.value, c.min, c.max, c.field); err != nil {
			return err
		}
	}
	return nil
}

func hasAnyValue(input MeasurementInput) bool {
	v := input.Values
	for _, p := range []*float64{v.Chest, v.Waist, v.Hips, v.LeftArm, v.RightArm, v.LeftThigh, v.RightThigh, v.Neck, input.BodyFatPct, input.MuscleMassKg} {
		if p != nil {
			return true
		}
	}
	return false
}
