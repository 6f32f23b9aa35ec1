// Package sse provides Server-Sent Events broadcasting of store changes.
//
// The dashboard subscribes to /api/events and re-fetches the affected
// collection when a change event arrives. This is a refresh hint for
// connected browsers, not cross-device synchronization.
package sse

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// WriteTimeout bounds writes to SSE clients so a stale connection cannot
// block a broadcast.
const WriteTimeout = 2 * time.Second

// Event describes a single store mutation.
type Event struct {
	Entity string `json:"entity"` // prompt, category, usage, settings
	Action string `json:"action"` // created, updated, deleted, recorded
	ID     string `json:"id,omitempty"`
}

// Client represents one connected SSE subscriber.
type Client struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	done    chan struct{}
	id      string
}

// Broadcaster manages SSE client connections and event fan-out.
type Broadcaster struct {
	clients map[string]*Client
	mu      sync.RWMutex
	nextID  int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[string]*Client)}
}

// AddClient registers a subscriber. The writer must support flushing.
func (b *Broadcaster) AddClient(w http.ResponseWriter) (*Client, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	b.mu.Lock()
	b.nextID++
	client := &Client{
		id:      fmt.Sprintf("client-%d", b.nextID),
		writer:  w,
		flusher: flusher,
		done:    make(chan struct{}),
	}
	b.clients[client.id] = client
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("clientId", client.id).Int("totalClients", total).Msg("SSE client connected")
	return client, nil
}

// RemoveClient unregisters a subscriber. Safe to call after the client has
// already been dropped by a failed broadcast write.
func (b *Broadcaster) RemoveClient(client *Client) {
	b.mu.Lock()
	delete(b.clients, client.id)
	select {
	case <-client.done:
	default:
		close(client.done)
	}
	total := len(b.clients)
	b.mu.Unlock()

	log.Debug().Str("clientId", client.id).Int("totalClients", total).Msg("SSE client disconnected")
}

func (b *Broadcaster) removeClientByID(id string) {
	b.mu.Lock()
	client, exists := b.clients[id]
	if exists {
		delete(b.clients, id)
		select {
		case <-client.done:
		default:
			close(client.done)
		}
	}
	b.mu.Unlock()
}

// ClientCount returns the number of connected subscribers.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast fans an event out to every subscriber. Writes that fail or exceed
// WriteTimeout mark the client dead and drop it.
func (b *Broadcaster) Broadcast(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	message := fmt.Sprintf("data: %s\n\n", payload)

	b.mu.RLock()
	clients := make([]*Client, 0, len(b.clients))
	for _, client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	deadCh := make(chan string, len(clients))
	var wg sync.WaitGroup
	for _, client := range clients {
		select {
		case <-client.done:
			continue
		default:
			wg.Add(1)
			go func(c *Client) {
				defer wg.Done()
				b.writeToClient(c, message, deadCh)
			}(client)
		}
	}
	wg.Wait()
	close(deadCh)

	for id := range deadCh {
		b.removeClientByID(id)
	}
}

func (b *Broadcaster) writeToClient(client *Client, message string, deadCh chan<- string) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		if _, err := client.writer.Write([]byte(message)); err != nil {
			log.Debug().Str("clientId", client.id).Err(err).Msg("Failed to write to SSE client")
			deadCh <- client.id
			return
		}
		client.flusher.Flush()
	}()

	select {
	case <-done:
	case <-time.After(WriteTimeout):
		log.Warn().Str("clientId", client.id).Dur("timeout", WriteTimeout).Msg("SSE write timed out")
		deadCh <- client.id
	case <-client.done:
	}
}

// ServeHTTP handles an SSE subscription request and blocks until the client
// disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client, err := b.AddClient(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer b.RemoveClient(client)

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"clientId\":%q}\n\n", client.id)
	client.flusher.Flush()

	<-r.Context().Done()
}
