package shopControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/shopquery"
)

// GET /shop
// Resolver outcome for the storefront; shop_id is null while unresolved.
func GetShop(state *shopquery.ShopState) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, loading, errMsg := state.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"shop":    details,
			"loading": loading,
			"error":   errMsg,
		})
	}
}

// GET /shop/categories
func GetCategories(state *shopquery.ShopState, catalog *shopquery.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := state.ShopID()
		if shopID == "" || catalog == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Shop is not resolved yet"})
			return
		}

		categories, err := catalog.Categories(c.Request.Context(), shopID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GET /shop/categories/:category_id/products
// Returns canonical product snapshots; raw catalog quirks (prize,
// featureImage) are normalized before anything leaves this service.
func GetProductsByCategory(state *shopquery.ShopState, catalog *shopquery.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := state.ShopID()
		if shopID == "" || catalog == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Shop is not resolved yet"})
			return
		}

		raws, err := catalog.ProductsByCategory(c.Request.Context(), shopID, c.Param("category_id"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}

		products := make([]any, 0, len(raws))
		for _, raw := range raws {
			products = append(products, raw.Normalize())
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
