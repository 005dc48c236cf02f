package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
)

type checkoutRequest struct {
	CouponCode string `json:"couponCode"`
}

func checkoutHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutRequest
		// Body is optional; checkout without a coupon sends none.
		_ = c.ShouldBindJSON(&in)

		user, _ := currentUser(c)
		order, err := orders.Checkout(c.Request.Context(), user.ID, in.CouponCode)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

func listMyOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		result, err := orders.ListForBuyer(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		order, err := orders.GetByID(c.Request.Context(), c.Param("id"), user)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func sellerOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		result, err := orders.ListForSeller(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatusHandler serves both the seller and admin routes; the
// service re-checks entitlement against the actual order contents.
func updateOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in statusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "status required")
			return
		}
		user, _ := currentUser(c)
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(in.Status), user)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func adminListOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		result, err := orders.ListAll(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}
