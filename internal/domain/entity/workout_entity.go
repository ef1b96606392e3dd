package entity

import "time"

// Workout is the aggregate root: a named session owned by exactly one user,
// carrying its exercises and their sets in creation order.
type Workout struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Name      string
	IsPublic  bool
	Exercises []Exercise
}

// Exercise belongs to exactly one workout.
type Exercise struct {
	ID        int64
	WorkoutID int64
	Name      string
	Sets      []Set
}

// Set belongs to exactly one exercise. Reps doubles as seconds for
// isometric holds (plank etc.), there is no separate duration field.
type Set struct {
	ID         int64
	ExerciseID int64
	Weight     float64
	Reps       int
}

// Volume is weight*reps summed over every set of the workout.
func (w *Workout) Volume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			total += s.Weight * float64(s.Reps)
		}
	}
	return total
}
