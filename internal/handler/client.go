package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
	hub "github.com/Ayesha0000000/local-camera-stream/internal/service/websocket"
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveWebsocketHandler registers dashboard clients with the hub so they receive
// every new detection as it is stored.
func LiveWebsocketHandler(h *hub.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}

		h.Register(connection)
		defer h.Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("Live client disconnected with error: %v", err)
				}
				break
			}
		}
	}
}
