// Package spectator はゲームのスナップショットを読み取り専用の観戦者へWebSocketで配信します。
// 観戦者からの入力はゲームに渡されません。
package spectator

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// Client はWebSocket接続を持つ単一の観戦者を表します。
type Client struct {
	ID     string          // 接続ごとに払い出すID
	Conn   *websocket.Conn // 観戦者との実際のWebSocketコネクション
	Send   chan []byte     // 観戦者へメッセージを送信するためのバッファ付きチャネル
	closed bool
	mu     sync.Mutex // closedフラグ保護用
}

// SafeSend は安全にチャネルにメッセージを送信します（closedチェック付き）
func (c *Client) SafeSend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- message:
		return true
	default:
		return false // チャネルがフル
	}
}

// SafeClose は安全にチャネルを閉じます
func (c *Client) SafeClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// Hub は観戦者の接続とスナップショットの配信を管理します。
// tetris の Renderer として GameLoop に接続されます。
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
	done       chan struct{}
	mu         sync.RWMutex

	minInterval   time.Duration
	lastBroadcast time.Time
	latest        tetris.Snapshot
	hasLatest     bool
	latestJSON    []byte
	unsent        bool        // 間引かれたまま配信されていない最新のスナップショットがある
	flushTimer    *time.Timer // 間引いた最新のスナップショットを後で配信するタイマー
	latestMu      sync.RWMutex
	shutdownOnce  sync.Once
}

// NewHub は新しい Hub を作成し、そのイベントループをバックグラウンドで開始します。
//
// Parameters:
//
//	minInterval : プレイ中のスナップショットを配信する最小間隔。0 なら毎回配信する
//
// Returns:
//
//	*Hub: 初期化されたハブのポインタ
func NewHub(minInterval time.Duration) *Hub {
	h := &Hub{
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 256),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		minInterval: minInterval,
	}
	go h.Run()
	return h
}

// Run は Hub のメインイベントループです。
// 観戦者の登録/解除と、スナップショットのブロードキャストを処理します。
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("[Spectator] Client registered: %s", client.ID)

			// 途中から観戦を始めた場合も、まず現在の盤面を送る
			if latest := h.latestMessage(); latest != nil {
				client.SafeSend(latest)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if registered, ok := h.clients[client.ID]; ok {
				registered.SafeClose()
				delete(h.clients, client.ID)
				log.Printf("[Spectator] Client unregistered: %s", client.ID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for id, client := range h.clients {
				if !client.SafeSend(message) {
					log.Printf("[Spectator] Send buffer full or closed, dropping snapshot for %s", id)
				}
			}
			h.mu.RUnlock()

		case <-h.quit:
			return
		}
	}
}

// Render はスナップショットを最新状態として保存し、観戦者に配信します。
// ゲームループを止めないように、ブロードキャストチャネルが詰まっている場合は配信を諦めます。
func (h *Hub) Render(snapshot tetris.Snapshot) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[Spectator] Failed to marshal snapshot for game %s: %v", snapshot.GameID, err)
		return
	}

	h.latestMu.Lock()
	h.latest = snapshot
	h.hasLatest = true
	h.latestJSON = message
	now := time.Now()
	throttled := snapshot.Status == "playing" && h.minInterval > 0 && now.Sub(h.lastBroadcast) < h.minInterval
	h.unsent = throttled
	if throttled {
		// 間引いた更新が最後の1つになっても、間隔が空いたら必ず配信する
		if h.flushTimer == nil {
			h.flushTimer = time.AfterFunc(h.minInterval-now.Sub(h.lastBroadcast), h.flush)
		}
	} else {
		h.lastBroadcast = now
	}
	h.latestMu.Unlock()

	if throttled {
		return
	}
	h.send(message, snapshot.GameID)
}

// flush は間引かれたまま残っている最新のスナップショットを配信します。
func (h *Hub) flush() {
	h.latestMu.Lock()
	h.flushTimer = nil
	if !h.unsent {
		h.latestMu.Unlock()
		return
	}
	h.unsent = false
	h.lastBroadcast = time.Now()
	message, gameID := h.latestJSON, h.latest.GameID
	h.latestMu.Unlock()

	h.send(message, gameID)
}

func (h *Hub) send(message []byte, gameID string) {
	select {
	case h.broadcast <- message:
	default:
		log.Printf("[Spectator] Broadcast channel full, skipping update for game %s", gameID)
	}
}

// Latest は最後に受け取ったスナップショットを返します。
func (h *Hub) Latest() (tetris.Snapshot, bool) {
	h.latestMu.RLock()
	defer h.latestMu.RUnlock()
	return h.latest, h.hasLatest
}

func (h *Hub) latestMessage() []byte {
	h.latestMu.RLock()
	defer h.latestMu.RUnlock()
	return h.latestJSON
}

// ClientCount は現在接続中の観戦者の数を返します。
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register はアップグレード済みのWebSocket接続を観戦者として登録し、
// 読み込み・書き込み用のゴルーチンを開始します。
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.quit:
		conn.Close()
		client.SafeClose()
		return client
	}

	go h.readPump(client)
	go client.writePump()
	return client
}

// readPump は接続が閉じられたことを検知するためだけに読み込みを続けます。
// 観戦者から届いたメッセージは捨てます。
func (h *Hub) readPump(client *Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.quit:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("[Spectator] WebSocket unexpected close error for %s: %v", client.ID, err)
			}
			return
		}
	}
}

// writePump は Client の Send チャネルからのメッセージをWebSocketコネクションに書き込みます。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// ハブがチャネルを閉じた
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Spectator] Error writing message for %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Shutdown はイベントループを止め、全ての観戦者を切断します。
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		log.Printf("[Spectator] Shutting down hub...")
		h.latestMu.Lock()
		if h.flushTimer != nil {
			h.flushTimer.Stop()
			h.flushTimer = nil
		}
		h.unsent = false
		h.latestMu.Unlock()
		close(h.quit)
		<-h.done

		h.mu.Lock()
		for id, client := range h.clients {
			client.SafeClose()
			delete(h.clients, id)
		}
		h.mu.Unlock()
		log.Printf("[Spectator] Hub shut down")
	})
}
