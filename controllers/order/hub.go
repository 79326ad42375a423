package orderControllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/models"
)

const writeWait = 5 * time.Second

// client serialises writes; a websocket connection allows one writer at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) write(messageType int, data []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(messageType, data)
}

// Hub pushes paid orders to every connected admin dashboard.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]*client
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHub accepts websocket upgrades from allowedOrigins only; requests
// without an Origin header (non-browser clients) are always accepted.
func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	h := &Hub{clients: make(map[*websocket.Conn]*client), log: log}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed["*"] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && allowed[u.Scheme+"://"+u.Host]
		},
	}
	return h
}

// GET /admin/orders/ws
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Info("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	h.mu.Unlock()

	defer h.remove(conn)

	// Dashboards never send; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// Clients reports how many dashboards are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends order to every client, dropping clients whose write fails.
func (h *Hub) Broadcast(order models.Order) {
	data, err := json.Marshal(gin.H{"type": "order.paid", "order": order})
	if err != nil {
		h.log.Error("encode order broadcast", zap.String("order_id", order.OrderRef), zap.Error(err))
		return
	}

	for _, cl := range h.snapshot() {
		if err := cl.write(websocket.TextMessage, data); err != nil {
			h.log.Info("drop websocket client", zap.Error(err))
			h.remove(cl.conn)
		}
	}
}

func (h *Hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	return clients
}

// Close disconnects every client.
func (h *Hub) Close() {
	clients := h.snapshot()
	h.mu.Lock()
	h.clients = make(map[*websocket.Conn]*client)
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, cl := range clients {
		_ = cl.write(websocket.CloseMessage, msg)
		_ = cl.conn.Close()
	}
}
