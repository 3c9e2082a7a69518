package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/auth"
	"github.com/essience-store/storefront-api/notify"
	"github.com/essience-store/storefront-api/shopquery"
	"github.com/essience-store/storefront-api/store"
)

// Deps bundles the stores and clients the route groups wire handlers to.
type Deps struct {
	Shop      *store.ShopStore
	Sessions  *store.SessionStore
	Notifier  *notify.Notifier
	Flow      *auth.Flow
	ShopState *shopquery.ShopState
	Catalog   *shopquery.Client
}

// SetupRoutes is the single entry‐point that wires up Auth, Shop, User, and
// Admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// 2️⃣ Public Shop routes (resolver + catalog proxy)
	SetupShopRoutes(r, deps)

	// 3️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, deps)

	// 4️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, deps)
}
