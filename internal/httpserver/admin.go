package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	categorysvc "marketplace/internal/service/category"
)

func adminListUsersHandler(users UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		if limit <= 0 || limit > 100 {
			limit = 50
		}
		result, err := users.List(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		if result == nil {
			result = []domain.User{}
		}
		c.JSON(http.StatusOK, gin.H{"users": result})
	}
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func adminUpdateRoleHandler(users UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in roleRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "role required")
			return
		}
		role := domain.Role(in.Role)
		if !domain.ValidRole(role) {
			badRequest(c, "unknown role")
			return
		}
		user, err := users.UpdateRole(c.Request.Context(), c.Param("id"), role)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func adminDeleteUserHandler(users UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := currentUser(c)
		if actor.ID == c.Param("id") {
			badRequest(c, "cannot delete own account")
			return
		}
		if err := users.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminListProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		result, err := products.AdminList(c.Request.Context(), domain.ProductStatus(c.Query("status")), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		if result == nil {
			result = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": result})
	}
}

func adminModerateProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in statusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "status required")
			return
		}
		user, _ := currentUser(c)
		p, err := products.Moderate(c.Request.Context(), c.Param("id"), user, domain.ProductStatus(in.Status))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func adminCreateCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		category, err := categories.Create(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

func adminUpdateCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		category, err := categories.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

func adminDeleteCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminDashboardHandler(stats StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := stats.GlobalStats(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": s})
	}
}
