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

// memoryWorkoutRepository implements repository.WorkoutRepository in memory.
type memoryWorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[primitive.ObjectID]domain.Workout
}

// NewMemoryWorkoutRepository creates an in-memory workout repository.
func NewMemoryWorkoutRepository() repository.WorkoutRepository {
	return &memoryWorkoutRepository{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *memoryWorkoutRepository) Create(ctx context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	if w.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires ownerId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	w.CreatedAt = now
	w.UpdatedAt = now
	r.workouts[w.ID] = *w
	return w.ID, nil
}

func (r *memoryWorkoutRepository) GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := w
	return &copied, nil
}

func (r *memoryWorkoutRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workouts := []domain.Workout{}
	for _, w := range r.workouts {
		if w.OwnerID == ownerID && withinRange(w.Date, from, to) {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date.Before(workouts[j].Date)
	})
	return workouts, nil
}

func (r *memoryWorkoutRepository) SetCompleted(ctx context.Context, id, ownerID primitive.ObjectID, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	w.Completed = completed
	w.UpdatedAt = time.Now().UTC()
	r.workouts[id] = w
	return nil
}

func (r *memoryWorkoutRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}
