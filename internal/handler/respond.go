package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/middleware"
	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/logger"
)

// respondError maps an error to its HTTP status and the failure shape
// {"error": message}. Unexpected errors are logged with their cause
// and return an opaque message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Unexpected(err)
	}

	if appErr.Kind == apperrors.KindUnexpected {
		log.Error(err, "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
	}

	c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// viewer fetches the authenticated viewer; routes behind Authenticate
// always have one.
func viewer(c *gin.Context) model.Viewer {
	v, _ := middleware.GetViewer(c)
	return v
}

// pathID parses the :id (or other named) UUID path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
