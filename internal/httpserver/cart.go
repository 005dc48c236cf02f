package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
)

// cartPayload always echoes the guest id so a client that arrived with no
// identity learns the one minted for it.
func cartPayload(cart *domain.Cart) gin.H {
	payload := gin.H{"cart": cart}
	if cart.GuestID != nil {
		payload["guestId"] = *cart.GuestID
	}
	return payload
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.GetOrCreate(c.Request.Context(), cartOwner(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "productId required")
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), cartOwner(c), in.ProductID, in.Quantity)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, cartPayload(cart))
	}
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func updateCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateItemRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.Quantity == nil {
			badRequest(c, "quantity required")
			return
		}
		cart, err := carts.UpdateItemQuantity(c.Request.Context(), cartOwner(c), c.Param("id"), *in.Quantity)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

func removeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.RemoveItem(c.Request.Context(), cartOwner(c), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
