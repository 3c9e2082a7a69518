// notification_web_socket.go
package notificationControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/essience-store/storefront-api/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /user/notifications/ws
// Streams each shown toast to the display layer as it fires.
func NotificationStream(n *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		toasts, cancel := n.Subscribe()
		defer cancel()

		// Reader goroutine only detects the peer going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case toast := <-toasts:
				if err := conn.WriteJSON(toast); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
