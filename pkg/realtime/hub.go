package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message is the wire format for every websocket event.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// clientRequest is what a connected client may send: join or leave a room.
type clientRequest struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Room   string `json:"room"`
}

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

// Hub tracks websocket clients grouped into named rooms
// (student:<id>, subject:<id>) and broadcasts events into them.
// Delivery is fire-and-forget: a client whose send buffer is full
// is disconnected rather than blocking the emitter.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	logger *zap.Logger
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	rooms  map[string]struct{}
	userID string
	role   string
	closed bool // guarded by hub.mu
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		logger: logger,
	}
}

// Emit broadcasts an event to every client in a room.
// Missing rooms and dead clients are ignored.
func (h *Hub) Emit(room, event string, data interface{}) {
	msg := Message{Event: event, Data: data}

	// Sends happen under the read lock; disconnect closes send channels
	// under the write lock, so a send can never race a close.
	var slow []*client
	h.mu.RLock()
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client",
			zap.String("user_id", c.userID), zap.String("room", room))
		h.disconnect(c)
	}
}

// RoomCount reports how many clients a room currently holds.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// HandleConnection serves one websocket client until it disconnects.
// Students are joined to their own student:<id> room automatically;
// staff and admin may subscribe to subject:<id> rooms.
func (h *Hub) HandleConnection(conn *websocket.Conn, userID, role string) {
	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		rooms:  make(map[string]struct{}),
		userID: userID,
		role:   role,
	}

	if role == "student" {
		h.join(c, "student:"+userID)
	}

	go c.writePump()
	c.readPump()
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leave(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

func (h *Hub) disconnect(c *client) {
	h.mu.Lock()
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	alreadyClosed := c.closed
	c.closed = true
	h.mu.Unlock()

	if !alreadyClosed {
		close(c.send) // stops writePump
		c.conn.Close()
	}
}

// canSubscribe limits which rooms a client may join on request.
func (c *client) canSubscribe(room string) bool {
	if c.role == "staff" || c.role == "admin" {
		return true
	}
	return room == "student:"+c.userID
}

func (c *client) readPump() {
	defer c.hub.disconnect(c)

	for {
		var req clientRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			return
		}

		switch req.Action {
		case "subscribe":
			if req.Room != "" && c.canSubscribe(req.Room) {
				c.hub.join(c, req.Room)
			}
		case "unsubscribe":
			if req.Room != "" {
				c.hub.leave(c, req.Room)
			}
		}
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
