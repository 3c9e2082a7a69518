package wishlistControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/models"
	"github.com/essience-store/storefront-api/store"
)

// GET /user/wishlist
func GetWishlist(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": s.Wishlist()})
	}
}

// POST /user/wishlist/toggle
// Adds the product when absent, removes it when present.
func ToggleWishlist(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw models.RawProduct
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s.ToggleWishlist(raw)
		c.JSON(http.StatusOK, gin.H{
			"items":      s.Wishlist(),
			"wishlisted": s.IsInWishlist(raw.ID),
		})
	}
}

// GET /user/wishlist/:product_id
func CheckWishlist(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := models.ProductID(c.Param("product_id"))
		c.JSON(http.StatusOK, gin.H{"wishlisted": s.IsInWishlist(id)})
	}
}
