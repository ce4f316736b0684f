package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "plays", "apply", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
	Code    string      `json:"code,omitempty"`    // Error code if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	ctx      context.Context
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for interactive play.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{
		conn:     conn,
		handlers: h,
		ctx:      r.Context(),
		sendChan: make(chan WSResponse, 256),
	}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) sendError(id string, err *requestError) {
	c.sendChan <- WSResponse{Type: "error", ID: id, Error: err.msg, Code: err.code}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "plays":
		c.handlePlays(msg)
	case "apply":
		c.handleApply(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type", Code: "UNKNOWN_TYPE"}
	}
}

// acquire takes a fast pool slot for the duration of one message.
func (c *WSClient) acquire() (func(), bool) {
	pool := c.handlers.pool
	if pool == nil {
		return func() {}, true
	}
	if err := pool.AcquireFast(c.ctx); err != nil {
		return nil, false
	}
	return pool.ReleaseFast, true
}

func (c *WSClient) handlePlays(msg WSMessage) {
	var req PlaysRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload", Code: "INVALID_JSON"}
		return
	}
	release, ok := c.acquire()
	if !ok {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "server busy", Code: "SERVER_BUSY"}
		return
	}
	defer release()

	resp, rerr := c.handlers.legalPlays(req)
	if rerr != nil {
		c.sendError(msg.ID, rerr)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handleApply(msg WSMessage) {
	var req ApplyRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload", Code: "INVALID_JSON"}
		return
	}
	release, ok := c.acquire()
	if !ok {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "server busy", Code: "SERVER_BUSY"}
		return
	}
	defer release()

	resp, rerr := c.handlers.applyPlay(req)
	if rerr != nil {
		c.sendError(msg.ID, rerr)
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}
