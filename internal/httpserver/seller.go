package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	couponsvc "marketplace/internal/service/coupon"
)

func listCouponsHandler(coupons CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		result, err := coupons.ListMine(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": result})
	}
}

func createCouponHandler(coupons CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in couponsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, _ := currentUser(c)
		coupon, err := coupons.Create(c.Request.Context(), user.ID, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
	}
}

func updateCouponHandler(coupons CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in couponsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, _ := currentUser(c)
		coupon, err := coupons.Update(c.Request.Context(), c.Param("id"), user, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

func deleteCouponHandler(coupons CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		if err := coupons.Delete(c.Request.Context(), c.Param("id"), user); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func sellerDashboardHandler(stats StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		s, err := stats.SellerStats(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": s})
	}
}
