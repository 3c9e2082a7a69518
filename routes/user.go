package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/essience-store/storefront-api/controllers/cart"
	notificationControllers "github.com/essience-store/storefront-api/controllers/notification"
	orderControllers "github.com/essience-store/storefront-api/controllers/order"
	shopControllers "github.com/essience-store/storefront-api/controllers/shop"
	wishlistControllers "github.com/essience-store/storefront-api/controllers/wishlist"
	"github.com/essience-store/storefront-api/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(deps.Shop))                      // GET /user/cart
			cartGroup.POST("/", cartControllers.AddToCart(deps.Shop))                   // POST /user/cart
			cartGroup.PUT("/", cartControllers.UpdateCartItem(deps.Shop))               // PUT /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Shop)) // DELETE /user/cart/:product_id
			cartGroup.GET("/summary", cartControllers.CartSummary(deps.Shop))           // GET /user/cart/summary
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(deps.Shop))
			wishlistGroup.POST("/toggle", wishlistControllers.ToggleWishlist(deps.Shop))
			wishlistGroup.GET("/:product_id", wishlistControllers.CheckWishlist(deps.Shop))
		}

		// ──────────────── Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.GET("/", orderControllers.GetOrders(deps.Shop))
			orderGroup.POST("/", orderControllers.PlaceOrder(deps.Shop, deps.Sessions, deps.Catalog, deps.Notifier))
			orderGroup.GET("/history", orderControllers.GetOrderHistory(deps.Sessions, deps.Catalog))
		}

		// ──────────────── Notifications ────────────────
		notificationGroup := userGroup.Group("/notifications")
		{
			notificationGroup.GET("/", notificationControllers.GetNotifications(deps.Notifier))
			notificationGroup.GET("/ws", notificationControllers.NotificationStream(deps.Notifier))
			notificationGroup.DELETE("/:id", notificationControllers.DismissNotification(deps.Notifier))
		}

		// ──────────────── Theme Preference ────────────────
		userGroup.GET("/theme", shopControllers.GetTheme(deps.Shop))
		userGroup.POST("/theme/toggle", shopControllers.ToggleTheme(deps.Shop))
	}
}
