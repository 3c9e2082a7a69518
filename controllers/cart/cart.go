package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/models"
	"github.com/essience-store/storefront-api/store"
)

type UpdateQuantityInput struct {
	ProductID models.ProductID `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
}

// GET /user/cart
func GetCart(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items":       s.Cart(),
			"total_items": s.TotalItems(),
			"total_price": s.TotalPrice(),
		})
	}
}

// POST /user/cart
// Adds one unit of the posted catalog record, merging with an existing line
// item for the same product.
func AddToCart(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw models.RawProduct
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s.AddToCart(raw)
		c.JSON(http.StatusOK, gin.H{"items": s.Cart(), "total_items": s.TotalItems()})
	}
}

// PUT /user/cart
// Overwrites a line item's quantity. Quantities below 1 never reach the
// store; decrement-to-zero must go through DELETE instead.
func UpdateCartItem(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s.UpdateQuantity(input.ProductID, input.Quantity)
		c.JSON(http.StatusOK, gin.H{"items": s.Cart(), "total_items": s.TotalItems()})
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := models.ProductID(c.Param("product_id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		s.RemoveFromCart(id)
		c.JSON(http.StatusOK, gin.H{"items": s.Cart(), "total_items": s.TotalItems()})
	}
}

// GET /user/cart/summary
func CartSummary(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"total_items": s.TotalItems(),
			"total_price": s.TotalPrice(),
		})
	}
}
