// Package stream pushes simulation snapshots to websocket subscribers.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

type Hub struct {
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.Mutex
	clients map[string]chan []byte

	// Initial, when set, is sent to every subscriber right after the upgrade.
	Initial func() any
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: map[string]chan []byte{},
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast encodes v once and queues it for every subscriber. Subscribers
// whose buffer is full miss this frame.
func (h *Hub) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ws] encode: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		select {
		case ch <- b:
		default:
			log.Printf("[ws] %s slow, frame dropped", id)
		}
	}
}

// join registers out; anything already queued on it is delivered first.
func (h *Hub) join(out chan []byte) string {
	id := fmt.Sprintf("W%d", h.nextID.Add(1))
	h.mu.Lock()
	h.clients[id] = out
	h.mu.Unlock()
	return id
}

func (h *Hub) leave(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

func (h *Hub) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	out := make(chan []byte, sendBuffer)
	if h.Initial != nil {
		if b, err := json.Marshal(h.Initial()); err == nil {
			out <- b
		}
	}
	id := h.join(out)
	defer h.leave(id)
	log.Printf("[ws] %s joined from %s", id, r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer goroutine.
	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Reader loop only watches for the close; inbound frames are ignored.
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	log.Printf("[ws] %s left", id)
}
