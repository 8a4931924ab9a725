// Package livepv streams live search progress to connected spectators over WebSocket, using
// github.com/gorilla/websocket (already an indirect dependency of the teacher repo, with no
// example call site in the retrieval pack to ground against; this package follows the
// library's own documented hub/broadcast idiom: one read/write pump goroutine per
// connection, a registry guarded by a mutex, best-effort non-blocking sends).
package livepv

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one JSON message sent to every connected spectator.
type Frame struct {
	Depth  int    `json:"depth"`
	Score  int    `json:"score"`
	Nodes  uint64 `json:"nodes"`
	TimeMS int64  `json:"time_ms"`
	PV     string `json:"pv"`
}

// Broadcaster fans out Frame updates to every connected WebSocket client. A frame is dropped
// for a client whose send buffer is full rather than blocking the search that produced it.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*client]struct{})}
}

// Handler upgrades an HTTP request to a WebSocket connection and registers it as a
// spectator. Mount at the configured --listen address.
func (b *Broadcaster) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(r.Context(), "livepv: upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Frame, 16)}

	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()

	go b.writePump(c)
	go b.readPump(c)
}

// readPump discards incoming messages; spectators are read-only. Its only job is to detect
// disconnects via the read error and unregister the client.
func (b *Broadcaster) readPump(c *client) {
	defer b.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Broadcaster) writePump(c *client) {
	defer c.conn.Close()
	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func (b *Broadcaster) unregister(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
	b.mu.Unlock()
}

// Publish fans frame out to every connected client. Non-blocking: a client whose buffer is
// full simply misses this frame.
func (b *Broadcaster) Publish(depth int, score int, nodes uint64, elapsed time.Duration, pv string) {
	frame := Frame{Depth: depth, Score: score, Nodes: nodes, TimeMS: elapsed.Milliseconds(), PV: pv}

	b.mu.Lock()
	defer b.mu.Unlock()

	for c := range b.clients {
		select {
		case c.send <- frame:
		default:
			// slow client: drop this frame rather than block the search
		}
	}
}
