package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightEntry is a single weigh-in.
type WeightEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	WeightKg   float64            `bson:"weightKg" json:"weightKg"`
	BodyFatPct *float64           `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	EntryDate  time.Time          `bson:"entryDate" json:"entryDate"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// BodyValues holds the per-site tape measurements, all in cm. Every field
// is optional; an entry needs at least one value somewhere.
type BodyValues struct {
	Chest      *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist      *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips       *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	LeftArm    *float64 `bson:"leftArm,omitempty" json:"leftArm,omitempty"`
	RightArm   *float64 `bson:"rightArm,omitempty" json:"rightArm,omitempty"`
	LeftThigh  *float64 `bson:"leftThigh,omitempty" json:"leftThigh,omitempty"`
	RightThigh *float64 `bson:"rightThigh,omitempty" json:"rightThigh,omitempty"`
	Neck       *float64 `bson:"neck,omitempty" json:"neck,omitempty"`
}

// BodyMeasurement is a dated set of body measurements.
type BodyMeasurement struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Date         time.Time          `bson:"date" json:"date"`
	Values       BodyValues         `bson:"values" json:"values"`
	BodyFatPct   *float64           `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	MuscleMassKg *float64           `bson:"muscleMassKg,omitempty" json:"muscleMassKg,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
