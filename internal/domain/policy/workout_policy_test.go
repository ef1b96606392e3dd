package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

func TestCanView(t *testing.T) {
	owner := &entity.User{ID: 1, Email: "a@x.com"}
	other := &entity.User{ID: 2, Email: "b@x.com"}

	private := &entity.Workout{ID: 10, UserID: owner.ID, IsPublic: false}
	public := &entity.Workout{ID: 11, UserID: owner.ID, IsPublic: true}

	cases := []struct {
		name   string
		viewer *entity.User
		w      *entity.Workout
		want   bool
	}{
		{"owner private", owner, private, true},
		{"owner public", owner, public, true},
		{"other private", other, private, false},
		{"other public", other, public, true},
		{"nil viewer", nil, public, false},
		{"nil workout", owner, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanView(tc.viewer, tc.w))
		})
	}
}
