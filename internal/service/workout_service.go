package service

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutInput is a training session to record.
type WorkoutInput struct {
	Name        string
	Date        time.Time
	DurationMin int
	Exercises   []domain.WorkoutExercise
	Notes       string
}

// WorkoutService records and serves training sessions.
type WorkoutService interface {
	LogWorkout(ctx context.Context, ownerID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	GetWorkout(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	CompleteWorkout(ctx context.Context, ownerID, id primitive.ObjectID) error
	DeleteWorkout(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type workoutService struct {
	workouts repository.WorkoutRepository
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(workouts repository.WorkoutRepository) WorkoutService {
	return &workoutService{workouts: workouts}
}

func (s *workoutService) LogWorkout(ctx context.Context, ownerID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, apperror.New(apperror.KindValidation, "workout name is required")
	}
	if input.Date.IsZero() {
		return nil, apperror.New(apperror.KindValidation, "workout date is required")
	}
	if input.DurationMin < 0 {
		return nil, apperror.New(apperror.KindValidation, "duration cannot be negative")
	}
	for _, ex := range input.Exercises {
		if ex.Name == "" {
			return nil, apperror.New(apperror.KindValidation, "every exercise needs a name")
		}
		for _, set := range ex.Sets {
			if set.Reps < 0 || set.WeightKg < 0 || set.RestSec < 0 {
				return nil, apperror.New(apperror.KindValidation, "set values cannot be negative")
			}
		}
	}

	workout := &domain.Workout{
		OwnerID:     ownerID,
		Name:        input.Name,
		Date:        input.Date,
		DurationMin: input.DurationMin,
		Exercises:   input.Exercises,
		Notes:       input.Notes,
	}
	if _, err := s.workouts.Create(ctx, workout); err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to save workout", err)
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workouts.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "Workout not found")
		}
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to load workout", err)
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	workouts, err := s.workouts.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to list workouts", err)
	}
	return workouts, nil
}

func (s *workoutService) CompleteWorkout(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if err := s.workouts.SetCompleted(ctx, id, ownerID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.KindNotFound, "Workout not found")
		}
		return apperror.Wrap(apperror.KindPersistence, "Failed to update workout", err)
	}
	return nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if err := s.workouts.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.KindNotFound, "Workout not found")
		}
		return apperror.Wrap(apperror.KindPersistence, "Failed to delete workout", err)
	}
	return nil
}
