// Package realtime pushes table-change notifications to connected storefront
// and admin clients over WebSocket. Consumers refetch the full table on any
// event, so bursts of writes are coalesced into a single notification per
// table before broadcast.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event signals that rows of a table changed. Action is "changed" when
// several writes were coalesced.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// DefaultDebounce is how long the hub waits for further writes to the same
// table before notifying clients.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces change notifications per table and flushes them after a
// quiet period.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]string // table -> action
	timer   *time.Timer
	flush   func([]Event)
}

func NewDebouncer(delay time.Duration, flush func([]Event)) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]string),
		flush:   flush,
	}
}

// Notify records a change. A second action on the same table within the
// window collapses to "changed".
func (d *Debouncer) Notify(table, action string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[table]; ok && prev != action {
		d.pending[table] = "changed"
	} else {
		d.pending[table] = action
	}

	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	events := make([]Event, 0, len(d.pending))
	for table, action := range d.pending {
		events = append(events, Event{Table: table, Action: action})
	}
	d.pending = make(map[string]string)
	d.timer = nil
	d.mu.Unlock()

	if len(events) > 0 {
		d.flush(events)
	}
}

// Flush delivers anything pending immediately. Used in tests and on shutdown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks connected clients and broadcasts debounced change events.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	debouncer *Debouncer
}

func NewHub() *Hub {
	h := &Hub{clients: make(map[*websocket.Conn]bool)}
	h.debouncer = NewDebouncer(DefaultDebounce, h.broadcast)
	return h
}

// Notify records a table change to be broadcast after the debounce window.
func (h *Hub) Notify(table, action string) {
	h.debouncer.Notify(table, action)
}

func (h *Hub) broadcast(events []Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
	}
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away. The read loop only exists to detect the close.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
