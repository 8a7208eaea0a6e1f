package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub, authMiddleware fiber.Handler) {
	r.Get("/ws/:collection/:userID", authMiddleware, websocket.New(func(c *websocket.Conn) {
		// the token decides whose events flow, not the path
		authedID, _ := c.Locals("user_id").(string)
		if authedID == "" || c.Params("userID") != authedID {
			_ = c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "forbidden"))
			c.Close()
			return
		}

		topic := Topic(c.Params("collection"), authedID)
		client := hub.Register(topic)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		// closing Send lets the writer goroutine drain and exit
		hub.Unregister(client)
		<-done
	}))
}
