package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 4 * 1024
	sendBuffer = 16
)

// Client is one inspector connection. A client can pause the stream; a
// paused client only receives snapshots it asks for.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	ClientID string
	Remote   string

	mu      sync.Mutex
	closed  bool
	paused  bool
	lastSeq int64
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID, remote string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		ClientID: clientID,
		Remote:   remote,
	}
}

// Paused reports whether the client has paused the snapshot stream.
func (c *Client) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// ReadPump serves the client's requests until the connection drops.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				slog.Debug("inspector read failed", "error", err, "client", c.ClientID)
			}
			return
		}

		var req Message
		if err := json.Unmarshal(data, &req); err != nil {
			c.sendError("malformed request: " + err.Error())
			continue
		}
		c.handle(req)
	}
}

func (c *Client) handle(req Message) {
	switch req.Type {
	case TypeSnapshotRequest:
		data, seq := c.hub.Latest()
		if seq > 0 {
			c.deliver(seq, data, true)
		}
	case TypePause:
		c.setPaused(true)
	case TypeResume:
		c.setPaused(false)
		// Catch up on whatever was published while paused.
		if data, seq := c.hub.Latest(); seq > 0 {
			c.deliver(seq, data, false)
		}
	default:
		slog.Warn("unknown inspector request", "type", req.Type, "client", c.ClientID)
		c.sendError("unknown message type " + req.Type)
	}
}

func (c *Client) setPaused(paused bool) {
	c.mu.Lock()
	c.paused = paused
	c.mu.Unlock()
	slog.Debug("inspector stream", "client", c.ClientID, "paused", paused)
}

// deliver queues snapshot seq unless the client already has it or, for
// pushed snapshots, has paused the stream.
func (c *Client) deliver(seq int64, payload json.RawMessage, requested bool) {
	data, err := json.Marshal(Message{Type: TypeSnapshot, Seq: seq, Payload: payload})
	if err != nil {
		slog.Error("marshal snapshot message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !requested && (c.paused || seq <= c.lastSeq) {
		return
	}
	if c.enqueueLocked(data) {
		c.lastSeq = max(c.lastSeq, seq)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				slog.Debug("inspector write failed", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg without blocking.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueueLocked(data)
}

func (c *Client) sendError(text string) {
	payload, _ := json.Marshal(ErrorPayload{Message: text})
	c.Send(&Message{Type: TypeError, Payload: payload})
}

// enqueueLocked drops data for a closed or slow client; the next snapshot
// supersedes it.
func (c *Client) enqueueLocked(data []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		slog.Warn("inspector send buffer full, dropping message", "client", c.ClientID)
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
