package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/isdelr/ecolearn/internal/fixtures"
	ws "github.com/isdelr/ecolearn/internal/websocket"
	"github.com/rs/zerolog/log"
)

// Publisher sends an event to every connected client.
type Publisher interface {
	Publish(action string, payload any)
}

// EventsHandler upgrades HTTP connections to the plantation event feed.
type EventsHandler struct {
	hub *ws.Hub
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *ws.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The fixture backend only runs locally.
		return true
	},
}

// Serve handles the WebSocket connection request.
func (h *EventsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var userID string
	if claims, ok := fixtures.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}

	// Join before the handshake so no event published after it is missed.
	client := ws.NewClient(userID)
	if !h.hub.Join(client) {
		http.Error(w, "Event feed is shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.Leave(client)
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	go client.WritePump(conn)
	go func() {
		client.ReadPump(conn)
		h.hub.Leave(client)
	}()
}
