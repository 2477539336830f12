package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is how often the hub pushes the latest snapshot.
const DefaultInterval = 100 * time.Millisecond

// Hub fans the editor's latest snapshot out to connected inspector clients.
// Publish may be called from any goroutine; clients only ever see the most
// recent snapshot at each tick.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // clientID -> client
	latest   json.RawMessage
	seq      int64
	sentSeq  int64
	interval time.Duration

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(interval time.Duration) *Hub {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Hub{
		clients:    make(map[string]*Client),
		interval:   interval,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done. Remaining
// clients are closed on return.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.broadcastLatest()
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish records v as the latest snapshot.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.latest = data
	h.seq++
	h.mu.Unlock()
	return nil
}

// Latest returns the most recent snapshot and its sequence number. The
// sequence is 0 before anything was published.
func (h *Hub) Latest() (json.RawMessage, int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.seq
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	welcome, _ := json.Marshal(WelcomePayload{ClientID: client.ClientID, Interval: h.interval.String()})
	client.Send(&Message{Type: TypeWelcome, ClientID: client.ClientID, Payload: welcome})
	if data, seq := h.Latest(); seq > 0 {
		client.deliver(seq, data, false)
	}

	slog.Info("inspector joined", "client", client.ClientID, "remote", client.Remote)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	h.mu.Unlock()
	client.close()

	slog.Info("inspector left", "client", client.ClientID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

// broadcastLatest sends the latest snapshot to every client if it changed
// since the previous tick.
func (h *Hub) broadcastLatest() {
	h.mu.Lock()
	if h.seq == h.sentSeq {
		h.mu.Unlock()
		return
	}
	h.sentSeq = h.seq
	seq, data := h.seq, h.latest
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.deliver(seq, data, false)
	}
}
