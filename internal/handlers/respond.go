package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &appErr) && appErr.Code >= 400:
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}. Client errors carry the service message; server
// errors carry fallback so internals are not leaked.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	if errors.Is(err, apperrors.ErrSuperseded) {
		c.JSON(status, gin.H{"error": apperrors.ErrSuperseded.Error()})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser reads the authenticated user or aborts with 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
