package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace/internal/domain"
)

// buildRouter wires the full route surface. The payment webhook is
// registered first and reads the raw request body itself; nothing ahead
// of it may consume the body, or signature verification breaks.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", guestHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/payments/webhook", paymentWebhookHandler(deps.Payments))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := router.Group("/auth")
	{
		auth.POST("/register", registerHandler(deps.Auth))
		auth.POST("/login", loginHandler(deps.Auth, deps.Carts))
		auth.GET("/me", requireAuth(deps.Auth), meHandler())
	}

	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))
	router.GET("/products/:id/reviews", listReviewsHandler(deps.Reviews))
	router.POST("/products/:id/reviews", requireAuth(deps.Auth), submitReviewHandler(deps.Reviews))
	router.GET("/categories", categoriesHandler(deps.Categories))

	cart := router.Group("/cart", optionalAuth(deps.Auth))
	{
		cart.GET("", getCartHandler(deps.Carts))
		cart.POST("/items", addCartItemHandler(deps.Carts))
		cart.PUT("/items/:id", updateCartItemHandler(deps.Carts))
		cart.DELETE("/items/:id", removeCartItemHandler(deps.Carts))
	}

	orders := router.Group("/orders", requireAuth(deps.Auth))
	{
		orders.POST("", checkoutHandler(deps.Orders))
		orders.GET("", listMyOrdersHandler(deps.Orders))
		orders.GET("/:id", getOrderHandler(deps.Orders))
	}

	router.POST("/payments/create-intent", requireAuth(deps.Auth), createIntentHandler(deps.Payments))

	seller := router.Group("/seller", requireAuth(deps.Auth), requireRole(domain.RoleSeller))
	{
		seller.GET("/products", sellerProductsHandler(deps.Products))
		seller.POST("/products", createProductHandler(deps.Products))
		seller.PUT("/products/:id", updateProductHandler(deps.Products))
		seller.DELETE("/products/:id", deleteProductHandler(deps.Products))
		seller.GET("/orders", sellerOrdersHandler(deps.Orders))
		seller.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Orders))
		seller.GET("/coupons", listCouponsHandler(deps.Coupons))
		seller.POST("/coupons", createCouponHandler(deps.Coupons))
		seller.PUT("/coupons/:id", updateCouponHandler(deps.Coupons))
		seller.DELETE("/coupons/:id", deleteCouponHandler(deps.Coupons))
		seller.GET("/dashboard", sellerDashboardHandler(deps.Stats))
	}

	admin := router.Group("/admin", requireAuth(deps.Auth), requireRole(domain.RoleAdmin))
	{
		admin.GET("/users", adminListUsersHandler(deps.Users))
		admin.PATCH("/users/:id/role", adminUpdateRoleHandler(deps.Users))
		admin.DELETE("/users/:id", adminDeleteUserHandler(deps.Users))
		admin.GET("/products", adminListProductsHandler(deps.Products))
		admin.PATCH("/products/:id/status", adminModerateProductHandler(deps.Products))
		admin.DELETE("/products/:id", deleteProductHandler(deps.Products))
		admin.GET("/orders", adminListOrdersHandler(deps.Orders))
		admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Orders))
		admin.POST("/categories", adminCreateCategoryHandler(deps.Categories))
		admin.PUT("/categories/:id", adminUpdateCategoryHandler(deps.Categories))
		admin.DELETE("/categories/:id", adminDeleteCategoryHandler(deps.Categories))
		admin.GET("/dashboard", adminDashboardHandler(deps.Stats))
	}

	return router
}
