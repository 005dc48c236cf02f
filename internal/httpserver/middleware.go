package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	authsvc "marketplace/internal/service/auth"
)

const (
	userContextKey = "authenticatedUser"
	// guestHeader carries the client-generated anonymous cart identity.
	guestHeader = "x-guest-id"
)

// requireAuth verifies the bearer token and re-resolves the user. The
// three failure classes get distinguishable messages per the API contract.
func requireAuth(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "invalid or expired token"
			if errors.Is(err, authsvc.ErrUserGone) {
				msg = "user not found"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(userContextKey, *user)
		c.Next()
	}
}

// optionalAuth resolves the user when a valid token is present but never
// rejects; failures leave the request as guest. Used on endpoints that
// serve both audiences, like the cart.
func optionalAuth(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(userContextKey, *user)
			}
		}
		c.Next()
	}
}

// requireRole gates a group on the resolved user's role.
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	// Tolerate a bare token without the scheme prefix.
	return strings.TrimSpace(header)
}

func currentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}

// cartOwner resolves the acting cart identity: authenticated user first,
// then the x-guest-id header, else zero (the service mints a guest id).
func cartOwner(c *gin.Context) domain.CartOwner {
	if user, ok := currentUser(c); ok {
		return domain.UserOwner(user.ID)
	}
	if guestID := strings.TrimSpace(c.GetHeader(guestHeader)); guestID != "" {
		return domain.GuestOwner(guestID)
	}
	return domain.CartOwner{}
}
