package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/spectator"
)

// SpectateHandler は観戦関連のHTTPリクエスト（スナップショット取得、WebSocket接続）を処理します。
type SpectateHandler struct {
	hub      *spectator.Hub
	upgrader websocket.Upgrader
}

// NewSpectateHandler は SpectateHandler の新しいインスタンスを作成します。
// allowedOrigins に "*" が含まれる場合は全てのOriginからの接続を許可します。
func NewSpectateHandler(hub *spectator.Hub, allowedOrigins []string) *SpectateHandler {
	return &SpectateHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// GetSnapshot は最新の盤面をJSONで返します。
// GET /api/game/snapshot
func (h *SpectateHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.hub.Latest()
	if !ok {
		WriteErrorResponse(w, http.StatusNotFound, "No game has been rendered yet")
		return
	}
	WriteJSONResponse(w, http.StatusOK, snapshot)
}

// ServeWS はWebSocket接続を確立し、観戦者としてハブに登録します。
// GET /ws/spectate
func (h *SpectateHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetViewerIDFromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade が失敗した場合、レスポンスは既に書き込まれている
		log.Printf("[SpectateHandler] Failed to upgrade connection for viewer %s: %v", viewerID, err)
		return
	}

	client := h.hub.Register(conn)
	log.Printf("[SpectateHandler] Viewer %s connected as client %s", viewerID, client.ID)
}
