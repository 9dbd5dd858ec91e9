package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer      = 256
	broadcastBuffer = 64
)

// Events carried in Message.Event.
const (
	EventFrame = "frame"
	EventEnded = "session_ended"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectating is read-only; origins are restricted by the API's CORS layer.
		return true
	},
}

// Message is what spectators receive.
type Message struct {
	SessionID string             `json:"session_id"`
	Event     string             `json:"event"`
	Frame     *multiplayer.Frame `json:"frame,omitempty"`
}

// Client is one spectator connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type envelope struct {
	sessionID string
	data      []byte
}

// Hub maintains the spectators of each session and fans frames out to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]bool

	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	logger     *log.Logger
}

// NewHub creates a new hub. A nil logger uses the default logger.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub's event loop. When ctx is cancelled every client is
// disconnected and Run returns.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to sessionID.
// initial, when non-nil, is the first message the client receives.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}
	if initial != nil {
		client.send <- initial
	}

	select {
	case h.register <- client:
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// PublishFrame sends a frame to the spectators of frame.Session.
// Frames for sessions nobody watches are dropped without encoding.
func (h *Hub) PublishFrame(frame multiplayer.Frame) {
	id := string(frame.Session)
	if !h.Watching(id) {
		return
	}
	data, err := EncodeFrame(frame)
	if err != nil {
		h.logger.Error("failed to encode frame", "session", id, "err", err)
		return
	}
	h.Publish(id, data)
}

// PublishEnded tells the spectators of a session that it is gone.
func (h *Hub) PublishEnded(sessionID string) {
	data, err := json.Marshal(Message{SessionID: sessionID, Event: EventEnded})
	if err != nil {
		return
	}
	h.Publish(sessionID, data)
}

// Publish queues raw message bytes for a session. If the hub is backed up
// the message is dropped; the next frame supersedes it anyway.
func (h *Hub) Publish(sessionID string, data []byte) {
	select {
	case h.broadcast <- envelope{sessionID: sessionID, data: data}:
	default:
		h.logger.Debug("dropping frame, hub busy", "session", sessionID)
	}
}

// Watching reports whether a session has at least one spectator.
func (h *Hub) Watching(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID]) > 0
}

// Spectators returns the number of spectators of a session.
func (h *Hub) Spectators(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// EncodeFrame builds the JSON message for a frame.
func EncodeFrame(frame multiplayer.Frame) ([]byte, error) {
	return json.Marshal(Message{
		SessionID: string(frame.Session),
		Event:     EventFrame,
		Frame:     &frame,
	})
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
	n := len(h.sessions[client.sessionID])
	h.mu.Unlock()

	h.logger.Debug("spectator joined", "session", client.sessionID, "spectators", n)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	clients, ok := h.sessions[client.sessionID]
	if !ok || !clients[client] {
		h.mu.Unlock()
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}
	n := len(clients)
	h.mu.Unlock()

	h.logger.Debug("spectator left", "session", client.sessionID, "spectators", n)
}

func (h *Hub) broadcastMessage(msg envelope) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.sessions[msg.sessionID] {
		select {
		case client.send <- msg.data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.sessions {
		for client := range clients {
			close(client.send)
		}
		delete(h.sessions, id)
	}
}

// readPump keeps the connection alive and unregisters the client when the
// peer goes away. Incoming messages are ignored.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-time.After(writeWait):
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket closed", "session", c.sessionID, "err", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
