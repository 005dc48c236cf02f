package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createIntentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

func createIntentHandler(payments PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in createIntentRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "orderId required")
			return
		}
		user, _ := currentUser(c)
		result, err := payments.CreateIntent(c.Request.Context(), in.OrderID, user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// paymentWebhookHandler reads the raw body for signature verification.
// A bad signature answers 400 so the provider retries; everything after a
// verified signature answers 200, including internal failures, so a
// cryptographically valid event is never redelivered forever.
func paymentWebhookHandler(payments PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			badRequest(c, "unreadable body")
			return
		}
		if err := payments.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
