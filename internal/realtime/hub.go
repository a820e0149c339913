// Package realtime pushes seat status changes to websocket subscribers of a
// hall.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"studyhall/internal/domain/seat"
	"studyhall/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventSubscribed   = "subscribed"
	EventSeatsChanged = "seats_changed"
)

type Event struct {
	Type   string      `json:"type"`
	HallID int64       `json:"hall_id"`
	Seats  []SeatState `json:"seats,omitempty"`
	At     time.Time   `json:"at"`
}

// SeatState is the public view of a seat in the feed.
type SeatState struct {
	ID                int64                   `json:"id"`
	SeatNumber        string                  `json:"seat_number"`
	Status            seat.Status             `json:"status"`
	MaintenanceReason *seat.MaintenanceReason `json:"maintenance_reason,omitempty"`
	MaintenanceUntil  *time.Time              `json:"maintenance_until,omitempty"`
}

type client struct {
	hallID int64
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans seat events out to the clients watching each hall.
type Hub struct {
	mu      sync.RWMutex
	halls   map[int64]map[*client]struct{}
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewHub(m *metrics.Metrics, log *zap.Logger) *Hub {
	return &Hub{
		halls:   make(map[int64]map[*client]struct{}),
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.halls[c.hallID]
	if !ok {
		set = make(map[*client]struct{})
		h.halls[c.hallID] = set
	}
	set[c] = struct{}{}
	h.metrics.ClientConnected()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.halls[c.hallID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.halls, c.hallID)
	}
	close(c.send)
	h.metrics.ClientDisconnected()
}

// subscribers returns how many clients watch a hall.
func (h *Hub) subscribers(hallID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.halls[hallID])
}

// SeatsChanged publishes committed seat transitions of one hall.
func (h *Hub) SeatsChanged(hallID int64, seats []seat.Seat) {
	states := make([]SeatState, len(seats))
	for i, s := range seats {
		states[i] = SeatState{
			ID:                s.ID,
			SeatNumber:        s.SeatNumber,
			Status:            s.Status,
			MaintenanceReason: s.MaintenanceReason,
			MaintenanceUntil:  s.MaintenanceUntil,
		}
	}
	h.broadcast(&Event{Type: EventSeatsChanged, HallID: hallID, Seats: states, At: h.now()})
}

func (h *Hub) broadcast(ev *Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal seat event", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.halls[ev.HallID] {
		select {
		case c.send <- data:
		default:
			// slow client, drop the event
			h.log.Debug("seat event dropped", zap.Int64("hall_id", ev.HallID), zap.Int64("user_id", c.userID))
		}
	}
}

// ServeWS registers conn for a hall and blocks until the client leaves.
func (h *Hub) ServeWS(conn *websocket.Conn, userID, hallID int64) {
	c := &client{
		hallID: hallID,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)

	hello, _ := json.Marshal(&Event{Type: EventSubscribed, HallID: hallID, At: h.now()})
	c.send <- hello

	go h.writePump(c)
	h.readPump(c)
}

// readPump only keeps the connection alive; clients do not send commands.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("seat feed read error", zap.Int64("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
