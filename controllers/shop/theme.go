package shopControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/store"
)

// GET /user/theme
func GetTheme(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"dark_mode": s.IsDarkMode()})
	}
}

// POST /user/theme/toggle
func ToggleTheme(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"dark_mode": s.ToggleTheme()})
	}
}
