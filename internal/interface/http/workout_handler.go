package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

type WorkoutHandler struct {
	Svc    *application.WorkoutService
	Logger *logrus.Logger
}

func NewWorkoutHandler(svc *application.WorkoutService, logger *logrus.Logger) *WorkoutHandler {
	return &WorkoutHandler{Svc: svc, Logger: logger}
}

type setRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
	Reps   *int     `json:"reps" binding:"required,gte=0,lte=2147483647"`
}

type exerciseRequest struct {
	Name string       `json:"name" binding:"required"`
	Sets []setRequest `json:"sets" binding:"required,dive"`
}

type createWorkoutRequest struct {
	Name      string            `json:"name" binding:"required"`
	IsPublic  bool              `json:"is_public"`
	Exercises []exerciseRequest `json:"exercises" binding:"required,dive"`
}

func (r createWorkoutRequest) toInput() application.CreateWorkoutInput {
	in := application.CreateWorkoutInput{
		Name:      r.Name,
		IsPublic:  r.IsPublic,
		Exercises: make([]application.ExerciseInput, 0, len(r.Exercises)),
	}
	for _, ex := range r.Exercises {
		e := application.ExerciseInput{Name: ex.Name, Sets: make([]application.SetInput, 0, len(ex.Sets))}
		for _, s := range ex.Sets {
			e.Sets = append(e.Sets, application.SetInput{Weight: *s.Weight, Reps: *s.Reps})
		}
		in.Exercises = append(in.Exercises, e)
	}
	return in
}

type pageQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

type searchQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit"`
}

type workoutURI struct {
	ID int64 `uri:"id"`
}

// Create POST /workouts/
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), req.toInput())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toWorkoutView(w))
}

// ListMine GET /workouts/?skip=&limit=
func (h *WorkoutHandler) ListMine(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	ws, err := h.Svc.ListMine(c.Request.Context(), middleware.CurrentUser(c), q.Skip, q.Limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toWorkoutViews(ws))
}

// ListPublic GET /workouts/public?skip=&limit=
func (h *WorkoutHandler) ListPublic(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	ws, err := h.Svc.ListPublic(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toWorkoutViews(ws))
}

// Search GET /workouts/public/search?q=&limit=
func (h *WorkoutHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	ws, err := h.Svc.SearchPublic(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toWorkoutViews(ws))
}

// Stats GET /workouts/stats
func (h *WorkoutHandler) Stats(c *gin.Context) {
	s, err := h.Svc.Stats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toStatsView(s))
}

// Get GET /workouts/:id
func (h *WorkoutHandler) Get(c *gin.Context) {
	var uri workoutURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.Svc.Get(c.Request.Context(), middleware.CurrentUser(c), uri.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toWorkoutView(w))
}
