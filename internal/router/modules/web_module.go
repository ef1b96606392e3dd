package modules

import (
	"os"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
)

// WebModule serves the bundled frontend: /static/* and GET /
type WebModule struct {
	Handler *handlers.SystemHandler
}

func NewWebModule(h *handlers.SystemHandler) *WebModule {
	return &WebModule{Handler: h}
}

func (m *WebModule) Register(rg *gin.RouterGroup) {
	if dir := m.Handler.StaticDir; dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			rg.Static("/static", dir)
		}
	}
	rg.GET("/", m.Handler.Index)
}
