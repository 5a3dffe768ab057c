package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/errorz"
)

// The response envelope matches what the board's frontend polls for:
// {"success": true, "data": ...} or {"success": false, "message": ...}.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError is the single place error kinds turn into status codes. The
// services below never see HTTP.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, errorz.ErrInvalidInput),
		errors.Is(err, errorz.ErrInvalidStatus),
		errors.Is(err, errorz.ErrDuplicateQuestion),
		errors.Is(err, errorz.ErrSessionEnded),
		errors.Is(err, errorz.ErrDuplicateUser):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errorz.ErrInvalidCredentials):
		respondMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errorz.ErrForbidden):
		respondMessage(c, http.StatusForbidden, "Not authorized to perform this action")
	case errors.Is(err, errorz.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, errorz.ErrCodeSpaceExhausted):
		// Transient: the caller can simply retry session creation.
		logger.Error("Access code generation exhausted", zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, err.Error())
	default:
		logger.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, "Server error")
	}
}
