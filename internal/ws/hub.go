package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans broadcast messages out to every client connected to a duel,
// keyed by the duel's join code.
type Hub struct {
	mu    sync.RWMutex
	duels map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		duels: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.duels[code] == nil {
		h.duels[code] = make(map[*websocket.Conn]bool)
	}
	h.duels[code][conn] = true
	log.Printf("ws: client connected to duel %s (total: %d)", code, len(h.duels[code]))
}

func (h *Hub) RemoveConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.duels[code]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.duels, code)
		}
		log.Printf("ws: client disconnected from duel %s", code)
	}
}

// Broadcast takes the write lock: dead connections are pruned inline, and
// two broadcasts to the same duel must not mutate the map concurrently.
func (h *Hub) Broadcast(code string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.duels[code]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.duels, code)
	}
}
