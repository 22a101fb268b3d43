package providers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

const (
	broadcastPayload      = "changed"
	broadcastWriteTimeout = 5 * time.Second
	broadcastSendBuffer   = 8
)

// BroadcastProviderInterface is the cross-process "something changed"
// primitive. NotifyChanged fans a zero-payload frame out to every connected
// subscriber, best effort: a slow or dead subscriber is dropped rather than
// waited for, and delivery is never guaranteed. Consumers are expected to
// also refresh opportunistically.
type BroadcastProviderInterface interface {
	NotifyChanged()
	Subscribers() int
	Handler() http.Handler
	Close()
}

type hubClient struct {
	conn *websocket.Conn
	send chan struct{}
}

type BroadcastHub struct {
	mu       sync.Mutex
	clients  map[*hubClient]struct{}
	closed   atomic.Bool
	logger   Logger
	metrics  MetricsProviderInterface
	upgrader websocket.Upgrader
}

func NewBroadcastHub(logger Logger, metrics MetricsProviderInterface) BroadcastProviderInterface {
	return &BroadcastHub{
		clients: make(map[*hubClient]struct{}),
		logger:  logger,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  256,
			WriteBufferSize: 256,
			// All subscribers are local processes of the same application.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the request to a websocket subscription on the change feed.
func (h *BroadcastHub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warnf(TypeApp, "Broadcast upgrade failed: %s", err)
			return
		}

		client := &hubClient{conn: conn, send: make(chan struct{}, broadcastSendBuffer)}
		h.mu.Lock()
		if h.closed.Load() {
			h.mu.Unlock()
			_ = conn.Close()
			return
		}
		h.clients[client] = struct{}{}
		h.mu.Unlock()

		go h.writePump(client)
		go h.readPump(client)
	})
}

func (h *BroadcastHub) NotifyChanged() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- struct{}{}:
		default:
			// subscriber is not keeping up, skip this notification for it
		}
	}
	h.metrics.IncBroadcasts()
}

func (h *BroadcastHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *BroadcastHub) Close() {
	h.closed.Store(true)
	h.mu.Lock()
	clients := make([]*hubClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()
	for _, client := range clients {
		h.drop(client)
	}
}

// drop removes the client and closes its connection. Only the first caller
// for a given client performs the close.
func (h *BroadcastHub) drop(client *hubClient) {
	h.mu.Lock()
	_, present := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if present {
		close(client.send)
		_ = client.conn.Close()
	}
}

func (h *BroadcastHub) writePump(client *hubClient) {
	for range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(broadcastWriteTimeout))
		if err := client.conn.WriteMessage(websocket.TextMessage, []byte(broadcastPayload)); err != nil {
			break
		}
	}
	h.drop(client)
}

func (h *BroadcastHub) readPump(client *hubClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(client)
}
