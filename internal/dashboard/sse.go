// Package dashboard serves the linked map/scatterplot views over HTTP and
// keeps them consistent through the shared selection controller.
package dashboard

import (
	"sync"

	"go.uber.org/zap"
)

// Broker fans selection-change events out to connected SSE clients. Slow
// clients are skipped rather than blocking the event that is being
// processed.
type Broker struct {
	mu      sync.RWMutex
	clients map[string]chan []byte
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{clients: make(map[string]chan []byte)}
}

// Add registers a client and returns its message channel.
func (b *Broker) Add(clientID string) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.clients[clientID]; ok {
		close(existing)
		delete(b.clients, clientID)
	}

	ch := make(chan []byte, 16)
	b.clients[clientID] = ch

	zap.L().Debug("sse client connected",
		zap.String("client", clientID),
		zap.Int("total", len(b.clients)),
	)
	return ch
}

// Remove unregisters a client and closes its channel.
func (b *Broker) Remove(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[clientID]; ok {
		close(ch)
		delete(b.clients, clientID)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast sends a payload to every connected client.
func (b *Broker) Broadcast(payload []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for clientID, ch := range b.clients {
		select {
		case ch <- payload:
		default:
			zap.L().Warn("sse client channel full, skipping", zap.String("client", clientID))
		}
	}
}
