package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"schoolgrid_go/middleware"
	"schoolgrid_go/services/websocket"
)

type WebSocketController struct {
	hub *websocket.Hub
}

func NewWebSocketController(hub *websocket.Hub) *WebSocketController {
	return &WebSocketController{hub: hub}
}

// HandleWebSocket rejects plain HTTP requests to the websocket endpoint.
func (wsc *WebSocketController) HandleWebSocket(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Use the WebSocket endpoint: ws://<host>/ws?token=YOUR_JWT",
	})
}

// WebSocketHandler returns a Fiber WebSocket handler that validates the JWT
// from the token query parameter and attaches the connection to the hub.
func (wsc *WebSocketController) WebSocketHandler() fiber.Handler {
	return fiberws.New(func(c *fiberws.Conn) {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("WebSocket handler panic: %v", r)
			}
		}()

		token := c.Query("token")
		if token == "" {
			logrus.Warn("WebSocket connection rejected: missing token")
			c.WriteMessage(fiberws.CloseMessage, []byte("Missing token"))
			c.Close()
			return
		}

		user, err := middleware.ValidateToken(token)
		if err != nil {
			logrus.WithError(err).Warn("WebSocket connection rejected: invalid token")
			c.WriteMessage(fiberws.CloseMessage, []byte("Invalid token"))
			c.Close()
			return
		}

		logrus.Infof("WebSocket connection established for user ID: %d (%s)", user.ID, user.Username)

		wsc.hub.ServeFiberWS(c, user.ID)
	})
}

// HandleWebSocketHTTP handles WebSocket upgrade using a standard HTTP handler.
func (wsc *WebSocketController) HandleWebSocketHTTP(w http.ResponseWriter, r *http.Request, userID uint) {
	wsc.hub.ServeWS(w, r, userID)
}

// GetWebSocketStats returns WebSocket connection statistics (admin only)
func (wsc *WebSocketController) GetWebSocketStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"connected_clients": wsc.hub.GetClientCount(),
		"status":            "active",
	})
}
