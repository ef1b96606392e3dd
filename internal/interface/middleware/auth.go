package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/pkg/response"
)

const ctxUserKey = "currentUser"

// TokenResolver maps a bearer token to the user it was issued for.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

// Auth requires "Authorization: Bearer <token>" and stores the resolved user
// in the Gin context. Every credential failure is a 401.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}
		u, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				unauthorized(c, "Could not validate credentials")
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil on public routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Abort(c, http.StatusUnauthorized, msg, nil)
}
