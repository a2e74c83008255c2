package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"agentcraft-be/internal/model"
	"agentcraft-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fanoutChannel carries cross-instance deliveries. Every instance
// subscribes and forwards to whichever of the user's sockets it holds.
const fanoutChannel = "notify_fanout"

// Hub tracks connected clients per user. A user may hold several sockets
// at once (multiple tabs or devices).
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// rdb is optional; without it delivery stays instance-local.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.consumeFanout()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a notification to every socket of one user, locally and
// across instances.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients := h.clients[userID]
	for _, client := range clients {
		h.push(client, data)
	}
	h.mu.RUnlock()

	h.publishFanout(userID.String(), data)
}

// Broadcast delivers a notification to every connected user.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.push(client, data)
		}
	}
	h.mu.RUnlock()

	h.publishFanout("*", data)
}

func (h *Hub) push(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		// Slow consumer, drop the socket rather than block the hub. The
		// unregister path owns closing the Send channel.
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) publishFanout(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), fanoutChannel, payload)
}

func (h *Hub) consumeFanout() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed fanout payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					h.push(client, payload.Message)
				}
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		for _, client := range clients {
			h.push(client, payload.Message)
		}
		h.mu.RUnlock()
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}
