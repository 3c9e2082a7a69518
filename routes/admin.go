package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/essience-store/storefront-api/controllers/order"
	"github.com/essience-store/storefront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Order Management ───────────
		adminGroup.GET("/orders/export-excel", orderControllers.ExportOrdersToExcel(deps.Shop))
	}
}
