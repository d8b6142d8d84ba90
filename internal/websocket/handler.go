package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches an authenticated dashboard connection to the hub and blocks
// until the connection drops.
func ServeWs(hub *Hub, c *websocket.Conn, adminID string) {
	client := &Client{Hub: hub, Conn: c, AdminID: adminID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
