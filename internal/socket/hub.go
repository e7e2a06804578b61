// internal/socket/hub.go
package socket

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Swap request messages
	MessageSwapRequestReceived MessageType = "swap_request_received"
	MessageSwapRequestAccepted MessageType = "swap_request_accepted"
	MessageSwapRequestRejected MessageType = "swap_request_rejected"

	// Notification messages
	MessageNotification      MessageType = "notification"
	MessageNotificationCount MessageType = "notification_count"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
)

const pingInterval = 30 * time.Second

// Message represents a WebSocket message
type Message struct {
	Type      MessageType    `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan []byte

	mu       sync.Mutex
	lastPing time.Time
}

// DirectMessage is a message addressed to every connection of one user.
type DirectMessage struct {
	UserID  string
	Message []byte
}

// Hub maintains the set of active clients and routes messages to them.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool

	register      chan *Client
	unregister    chan *Client
	directMessage chan *DirectMessage
	done          chan struct{}

	logger *slog.Logger
	mu     sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:       make(map[*Client]bool),
		userClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		directMessage: make(chan *DirectMessage, 256),
		done:          make(chan struct{}),
		logger:        logger.With(slog.String("component", "hub")),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("hub_started")

	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case dm := <-h.directMessage:
			h.sendToUser(dm)

		case <-pingTicker.C:
			h.pingClients()
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[*Client]bool)
	h.userClients = make(map[string]map[*Client]bool)
	h.logger.Info("hub_stopped")
}

// Register hands a client to the hub. It returns false once the hub stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client; it is a no-op once the hub stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if h.userClients[client.UserID] == nil {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	h.logger.Debug("client_registered",
		slog.String("user_id", client.UserID),
		slog.String("client_id", client.ID),
		slog.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if clients, ok := h.userClients[client.UserID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	close(client.Send)

	h.logger.Debug("client_unregistered",
		slog.String("user_id", client.UserID),
		slog.String("client_id", client.ID),
		slog.Int("total", len(h.clients)))
}

// deliver queues data for one client and reports false when its buffer is full.
func deliver(client *Client, data []byte) bool {
	select {
	case client.Send <- data:
		return true
	default:
		return false
	}
}

// dropSlow disconnects clients whose buffers overflowed. Called without h.mu held.
func (h *Hub) dropSlow(slow []*Client) {
	for _, c := range slow {
		h.unregisterClient(c)
	}
}

func (h *Hub) sendToUser(dm *DirectMessage) {
	h.mu.RLock()
	var slow []*Client
	sent := 0
	for client := range h.userClients[dm.UserID] {
		if deliver(client, dm.Message) {
			sent++
		} else {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	h.dropSlow(slow)
	h.logger.Debug("direct_message", slog.String("user_id", dm.UserID), slog.Int("sent", sent))
}

func (h *Hub) pingClients() {
	data, _ := json.Marshal(Message{Type: MessagePing, Timestamp: time.Now()})

	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		if !deliver(client, data) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	h.dropSlow(slow)
}

// SendToUser queues a message for every connection of userID. Messages sent
// after the hub stopped are dropped.
func (h *Hub) SendToUser(userID string, msgType MessageType, payload map[string]any) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error("marshal_message_failed", slog.Any("error", err))
		return
	}

	select {
	case h.directMessage <- &DirectMessage{UserID: userID, Message: data}:
	case <-h.done:
	}
}

// IsUserOnline checks if a user is currently connected
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.userClients[userID]
	return ok
}

// GetConnectedClientsCount returns total connected clients
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
