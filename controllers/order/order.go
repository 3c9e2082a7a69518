package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/models"
	"github.com/essience-store/storefront-api/notify"
	"github.com/essience-store/storefront-api/shopquery"
	"github.com/essience-store/storefront-api/store"
)

// POST /user/orders
// Checkout is optimistic: the cart is cleared into a local order record and
// the response returns immediately; the remote submission runs in the
// background and rolls the local record back if the order service rejects
// it. The user sees the rollback as an error toast.
func PlaceOrder(s *store.ShopStore, sessions *store.SessionStore, catalog *shopquery.Client, notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := s.PlaceOrder()
		if order == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		if catalog != nil {
			go submitRemote(s, sessions, catalog, notifier, *order)
		}

		c.JSON(http.StatusCreated, order)
	}
}

func submitRemote(s *store.ShopStore, sessions *store.SessionStore, catalog *shopquery.Client, notifier *notify.Notifier, order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var userID, name, mobile string
	if session := sessions.Current(); session != nil {
		userID = session.User.ID
		name = session.User.Username
		mobile = session.User.Mobile
	}

	err := catalog.SubmitOrder(ctx, s.ShopID(), userID, name, mobile, order.Ref)
	if err == nil {
		return
	}

	if s.RollbackOrder(order.Ref) && notifier != nil {
		notifier.Show("Order could not be placed. Your cart has been restored.", models.ToastError)
	}
}

// GET /user/orders
func GetOrders(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"orders": s.Orders()})
	}
}

// GET /user/orders/history
// Remote order history for the signed-in user; requires a session.
func GetOrderHistory(sessions *store.SessionStore, catalog *shopquery.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Current()
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to view order history"})
			return
		}
		if catalog == nil {
			c.JSON(http.StatusOK, gin.H{"orders": []models.RemoteOrder{}})
			return
		}

		orders, err := catalog.OrderHistory(c.Request.Context(), session.User.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch order history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
