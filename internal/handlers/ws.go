package handlers

import (
	"log"
	"net/http"

	"github.com/moneefalasali/Shield-Spear/internal/duel"
	"github.com/moneefalasali/Shield-Spear/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub     *ws.Hub
	manager *duel.Manager
}

func NewWSHandler(hub *ws.Hub, manager *duel.Manager) *WSHandler {
	return &WSHandler{hub: hub, manager: manager}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleDuelWebSocket godoc
// @Summary      WebSocket connection for duel updates
// @Description  Connect via WebSocket to receive real-time duel events
// @Tags         websocket
// @Param        code path string true "Session code"
// @Router       /ws/duel/{code} [get]
func (h *WSHandler) HandleDuelWebSocket(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.manager.Snapshot(code); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(code, conn)
	defer h.hub.RemoveConnection(code, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
