package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	authsvc "marketplace/internal/service/auth"
)

// respondErr is the single place domain errors become HTTP responses.
// Handlers return whatever their service gives them; nothing store- or
// SDK-specific leaks to clients.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidOrderState):
		c.JSON(http.StatusBadRequest, gin.H{"error": clientMessage(err)})
	case errors.Is(err, authsvc.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": clientMessage(err)})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": clientMessage(err)})
	case errors.Is(err, domain.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"error": clientMessage(err)})
	default:
		// Unexpected: log server-side (via gin's error sink), answer generically.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// clientMessage strips the wrapped sentinel prefix from validation errors
// so clients see the reason, not the taxonomy.
func clientMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 && errors.Is(err, domain.ErrValidation) {
		return msg[idx+2:]
	}
	return msg
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
