package entity

import (
	"time"
)

// User is the identity anchor for workouts.
// Password holds the bcrypt digest and is never serialized.
//
// Users are immutable after signup; there is no update path.
type User struct {
	ID        int64
	Email     string
	Password  string
	CreatedAt time.Time
}
