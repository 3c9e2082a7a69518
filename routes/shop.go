package routes

import (
	"github.com/gin-gonic/gin"

	shopControllers "github.com/essience-store/storefront-api/controllers/shop"
)

// SetupShopRoutes registers the public storefront endpoints backed by the
// shop resolver and catalog query service.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	shopGroup := r.Group("/shop")
	{
		shopGroup.GET("/", shopControllers.GetShop(deps.ShopState))
		shopGroup.GET("/categories", shopControllers.GetCategories(deps.ShopState, deps.Catalog))
		shopGroup.GET("/categories/:category_id/products", shopControllers.GetProductsByCategory(deps.ShopState, deps.Catalog))
	}
}
