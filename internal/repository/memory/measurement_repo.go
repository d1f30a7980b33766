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

// memoryWeightRepository implements repository.WeightRepository in memory.
type memoryWeightRepository struct {
	mu      sync.RWMutex
	entries map[primitive.ObjectID]domain.WeightEntry
}

// NewMemoryWeightRepository creates an in-memory weight entry repository.
func NewMemoryWeightRepository() repository.WeightRepository {
	return &memoryWeightRepository{entries: make(map[primitive.ObjectID]domain.WeightEntry)}
}

func (r *memoryWeightRepository) Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error) {
	if entry.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("weight entry requires ownerId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *memoryWeightRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.WeightEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []domain.WeightEntry{}
	for _, e := range r.entries {
		if e.OwnerID == ownerID && withinRange(e.EntryDate, from, to) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate.Before(entries[j].EntryDate)
	})
	return entries, nil
}

func (r *memoryWeightRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// memoryMeasurementRepository implements repository.MeasurementRepository in memory.
type memoryMeasurementRepository struct {
	mu           sync.RWMutex
	measurements map[primitive.ObjectID]domain.BodyMeasurement
}

// NewMemoryMeasurementRepository creates an in-memory body measurement repository.
func NewMemoryMeasurementRepository() repository.MeasurementRepository {
	return &memoryMeasurementRepository{measurements: make(map[primitive.ObjectID]domain.BodyMeasurement)}
}

func (r *memoryMeasurementRepository) Create(ctx context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error) {
	if m.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("measurement requires ownerId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	r.measurements[m.ID] = *m
	return m.ID, nil
}

func (r *memoryMeasurementRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]domain.BodyMeasurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	measurements := []domain.BodyMeasurement{}
	for _, m := range r.measurements {
		if m.OwnerID == ownerID && withinRange(m.Date, from, to) {
			measurements = append(measurements, m)
		}
	}
	sort.SliceStable(measurements, func(i, j int) bool {
		return measurements[i].Date.Before(measurements[j].Date)
	})
	return measurements, nil
}

func (r *memoryMeasurementRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.measurements[id]
	if !ok || m.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.measurements, id)
	return nil
}
