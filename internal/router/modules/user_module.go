package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

// UserModule exposes the caller's own account: GET /users/me
type UserModule struct {
	Handler  *handlers.UserHandler
	Resolver middleware.TokenResolver
}

func NewUserModule(h *handlers.UserHandler, resolver middleware.TokenResolver) *UserModule {
	return &UserModule{Handler: h, Resolver: resolver}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Resolver))
	{
		auth.GET("/me", m.Handler.GetProfile)
	}
}
