package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/pkg/response"
	"github.com/oksasatya/go-fitness-tracker/pkg/validation"
)

// bindError rejects a request whose payload failed binding or validation.
func bindError(c *gin.Context, err error) {
	response.Abort(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
}

// writeError maps application errors to status codes. Unknown errors are
// logged and reported as a bare 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			details[f.Field] = f.Message
		}
		response.Abort(c, http.StatusUnprocessableEntity, "invalid payload", details)
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Abort(c, http.StatusBadRequest, "Email already registered", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		response.Abort(c, http.StatusUnauthorized, "Incorrect username or password", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Abort(c, http.StatusForbidden, "Not authorized to access this workout", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Abort(c, http.StatusNotFound, "Workout not found", nil)
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
		response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
