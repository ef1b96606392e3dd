package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetProfile GET /users/me (auth required)
func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email})
}
