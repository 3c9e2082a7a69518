package notificationControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/notify"
)

// GET /user/notifications
func GetNotifications(n *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"toasts": n.Active()})
	}
}

// DELETE /user/notifications/:id
// Explicit dismissal; the pending auto-expiry for this id becomes a no-op.
func DismissNotification(n *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
			return
		}

		n.Dismiss(id)
		c.JSON(http.StatusOK, gin.H{"toasts": n.Active()})
	}
}
