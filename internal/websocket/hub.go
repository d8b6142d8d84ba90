package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"aqua-support-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const escalationChannel = "escalation_events"

// EscalationNotice is the payload pushed to connected admin dashboards when an
// inquiry gets escalated to a human.
type EscalationNotice struct {
	InquiryID  string    `json:"inquiry_id"`
	Question   string    `json:"question"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Attempts   int       `json:"attempts"`
	Timestamp  time.Time `json:"timestamp"`
}

type Hub struct {
	// Connected admin dashboard clients.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{"admin_id": client.AdminID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Dashboard client unregistered", map[string]interface{}{"admin_id": client.AdminID})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes an escalation notice to every local client and publishes it
// to Redis so other instances deliver it to theirs.
func (h *Hub) Broadcast(notice EscalationNotice) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "escalation",
		"data": notice,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal escalation notice", map[string]interface{}{"error": err.Error()})
		return
	}

	// With Redis the local delivery happens through the subscription, which
	// keeps every instance on the same code path and avoids double sends.
	if h.rdb != nil {
		h.rdb.Publish(context.Background(), escalationChannel, data)
		return
	}
	h.deliverLocal(data)
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"admin_id": client.AdminID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, escalationChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal([]byte(msg.Payload))
	}
}
