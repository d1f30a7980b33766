package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSet is one set of an exercise within a workout. A set can be
// logged up front and marked completed as the session progresses; only
// completed sets count toward lifted volume.
type WorkoutSet struct {
	Reps      int     `bson:"reps" json:"reps"`
	WeightKg  float64 `bson:"weightKg" json:"weightKg"`
	RestSec   int     `bson:"restSec" json:"restSec"`
	Completed bool    `bson:"completed" json:"completed"`
}

// WorkoutExercise is an exercise and its sets, embedded in a workout.
type WorkoutExercise struct {
	Name  string       `bson:"name" json:"name"`
	Order int          `bson:"order" json:"order"`
	Sets  []WorkoutSet `bson:"sets" json:"sets"`
}

// Workout is a logged training session.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name        string             `bson:"name" json:"name"`
	Date        time.Time          `bson:"date" json:"date"`
	DurationMin int                `bson:"durationMin" json:"durationMin"`
	Exercises   []WorkoutExercise  `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalWeightLifted sums reps times weight over the completed sets.
func (w *Workout) TotalWeightLifted() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			total += float64(set.Reps) * set.WeightKg
		}
	}
	return total
}
