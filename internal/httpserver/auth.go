package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authsvc "marketplace/internal/service/auth"
)

func registerHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in authsvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, err := auth.Register(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginHandler authenticates and, when the client presents a guest cart
// identity, folds that cart into the user's before responding.
func loginHandler(auth AuthService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "email and password required")
			return
		}
		user, token, err := auth.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		if guestID := strings.TrimSpace(c.GetHeader(guestHeader)); guestID != "" {
			if err := carts.MergeGuestCart(c.Request.Context(), user.ID, guestID); err != nil {
				// Login succeeded; a merge failure should not undo it.
				_ = c.Error(err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
