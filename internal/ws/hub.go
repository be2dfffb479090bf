package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Envelope is the wire shape of every event pushed to a client.
type Envelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type directed struct {
	userIDs []string
	message []byte
}

// Hub tracks connected clients by user and routes events to them. It
// implements the notifier surface the usecases push through.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[string]map[*Client]bool
	send       chan directed
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		send:       make(chan directed, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.byUser[client.userID], client)
				if len(h.byUser[client.userID]) == 0 {
					delete(h.byUser, client.userID)
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
			}

		case d := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(d.userIDs))
			for _, id := range d.userIDs {
				for c := range h.byUser[id] {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// NotifyUser pushes one event to every connection of a single user.
func (h *Hub) NotifyUser(userID string, event string, payload any) {
	h.NotifyUsers([]string{userID}, event, payload)
}

// NotifyUsers pushes one event to every connection of each listed user.
// Delivery is best effort: a full buffer drops the event.
func (h *Hub) NotifyUsers(userIDs []string, event string, payload any) {
	if h == nil || len(userIDs) == 0 {
		return
	}

	b, err := json.Marshal(Envelope{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	select {
	case h.send <- directed{userIDs: userIDs, message: b}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS event dropped | type=%s reason=buffer_full", event)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
