package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/spectator"
)

// RouterConfig は観戦サーバーのルーティング設定です。
type RouterConfig struct {
	JWTSecret      string   // 空なら認証なし
	AllowedOrigins []string // CORS と WebSocket の Origin チェックに使う
}

// NewRouter は観戦サーバーのルーターを組み立てます。
func NewRouter(hub *spectator.Hub, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// 認証不要な公開エンドポイント
	public := NewPublicHandler(hub.ClientCount)
	r.HandleFunc("/api/public", public.Health).Methods(http.MethodGet)

	spectate := NewSpectateHandler(hub, cfg.AllowedOrigins)
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/api/game/snapshot", spectate.GetSnapshot).Methods(http.MethodGet)
	protected.HandleFunc("/ws/spectate", spectate.ServeWS).Methods(http.MethodGet)

	return middleware.CORSHandler(cfg.AllowedOrigins)(r)
}
