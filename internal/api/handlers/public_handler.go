package handlers

import (
	"log"
	"net/http"
	"time"
)

// PublicHandler handles the unauthenticated health endpoint.
type PublicHandler struct {
	startedAt time.Time
	clients   func() int
}

// NewPublicHandler creates a new instance of PublicHandler.
// clients reports the number of connected spectators.
func NewPublicHandler(clients func() int) *PublicHandler {
	return &PublicHandler{startedAt: time.Now(), clients: clients}
}

// Health reports that the spectator server is up.
// GET /api/public
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	log.Println("[PublicHandler] Request to public endpoint: /api/public")
	spectators := 0
	if h.clients != nil {
		spectators = h.clients()
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
		"spectators": spectators,
	})
}
