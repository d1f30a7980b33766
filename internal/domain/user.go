package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account. All data in the system is owned row-level by
// a single user; there are no roles.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile holds the body facts used for derived metrics (BMI needs height).
type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	HeightCm      float64            `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	BirthDate     string             `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	ActivityLevel string             `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	Goals         []string           `bson:"goals,omitempty" json:"goals,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
