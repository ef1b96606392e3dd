// Package policy holds authorization rules for the workout domain.
package policy

import "github.com/oksasatya/go-fitness-tracker/internal/domain/entity"

// CanView reports whether viewer may read w: owners always can, everyone
// else only when the workout is public. A nil viewer or workout is denied.
func CanView(viewer *entity.User, w *entity.Workout) bool {
	if viewer == nil || w == nil {
		return false
	}
	return w.UserID == viewer.ID || w.IsPublic
}
