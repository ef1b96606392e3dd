package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-fitness-tracker/pkg/response"
)

// Pinger is anything the health check should reach, e.g. the pg pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	StaticDir string
	DB        Pinger
}

func NewSystemHandler(staticDir string, db Pinger) *SystemHandler {
	return &SystemHandler{StaticDir: staticDir, DB: db}
}

// Index GET / serves the frontend when one is bundled.
func (h *SystemHandler) Index(c *gin.Context) {
	if h.StaticDir != "" {
		index := filepath.Join(h.StaticDir, "index.html")
		if st, err := os.Stat(index); err == nil && !st.IsDir() {
			c.File(index)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Fitness Tracker API - Frontend coming soon"})
}

// Health GET /healthz
func (h *SystemHandler) Health(c *gin.Context) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			response.Abort(c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, gin.H{"ok": true}, "ok", nil))
}
