package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type setReq struct {
	Weight *float64 `json:"weight" binding:"required"`
	Reps   *int     `json:"reps" binding:"required,gte=0"`
}

type exerciseReq struct {
	Name string   `json:"name" binding:"required"`
	Sets []setReq `json:"sets" binding:"dive"`
}

type workoutReq struct {
	Email     string        `json:"email" binding:"omitempty,email"`
	Name      string        `json:"name" binding:"required"`
	Exercises []exerciseReq `json:"exercises" binding:"dive"`
}

func intp(v int) *int { return &v }

func TestToDetailsNestedPaths(t *testing.T) {
	Init()
	w := 10.0
	req := workoutReq{
		Email: "nope",
		Exercises: []exerciseReq{
			{Name: "Squat", Sets: []setReq{{Weight: &w, Reps: intp(5)}, {Reps: intp(-1)}}},
		},
	}
	err := binding.Validator.ValidateStruct(&req)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "is required", details["exercises[0].sets[1].weight"])
	assert.Equal(t, "must be greater than or equal to 0", details["exercises[0].sets[1].reps"])
	assert.NotContains(t, details, "exercises[0].sets[0].reps")
}

func TestToDetailsJSONErrors(t *testing.T) {
	var v workoutReq
	err := json.Unmarshal([]byte(`{"name":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"name": 5}`), &v)
	assert.Equal(t, "must be string", ToDetails(err)["name"])
}

func TestToDetailsFallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
