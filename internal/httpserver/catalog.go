package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	productsvc "marketplace/internal/service/product"
	reviewsvc "marketplace/internal/service/review"
)

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func listProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		result, err := products.PublicList(c.Request.Context(), c.Query("category"), c.Query("q"), limit, offset)
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

func getProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.PublicGet(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func categoriesHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tree, err := categories.Tree(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if tree == nil {
			tree = []*domain.CategoryNode{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": tree})
	}
}

func listReviewsHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, average, err := reviews.ProductReviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		if result == nil {
			result = []domain.Review{}
		}
		c.JSON(http.StatusOK, gin.H{"reviews": result, "averageRating": average})
	}
}

func submitReviewHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in reviewsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, _ := currentUser(c)
		review, created, err := reviews.Submit(c.Request.Context(), user.ID, c.Param("id"), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"review": review})
	}
}

func sellerProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		result, err := products.ListMine(c.Request.Context(), user.ID)
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

func createProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, _ := currentUser(c)
		p, err := products.Create(c.Request.Context(), user.ID, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": p})
	}
}

func updateProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, _ := currentUser(c)
		p, err := products.Update(c.Request.Context(), c.Param("id"), user, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func deleteProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		if err := products.Delete(c.Request.Context(), c.Param("id"), user); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
