package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub fans job lifecycle events out to connected clients. Drivers join
// the shared drivers room for the new-job feed plus a personal room for
// updates on their own jobs.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

const driversRoom = "drivers"

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.joinRoom(client, "user_"+client.UserID.Hex())

	if client.UserType == "driver" {
		h.joinRoom(client, driversRoom)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
}

func (h *Hub) sendToRoom(roomID string, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range room {
		select {
		case client.send <- data:
		default:
			// slow consumer, drop the event
		}
	}
}

// BroadcastToDrivers pushes an event to every connected driver.
func (h *Hub) BroadcastToDrivers(eventType string, data interface{}) {
	h.sendToRoom(driversRoom, Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}

// SendToUser pushes an event to one user's personal room.
func (h *Hub) SendToUser(userID primitive.ObjectID, eventType string, data interface{}) {
	h.sendToRoom("user_"+userID.Hex(), Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}
