package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Conn serializes writes to one websocket; gorilla allows a single
// concurrent writer. Messages handed to Enqueue are written by the
// connection's own pump goroutine until Close.
type Conn struct {
	mu   sync.Mutex
	ws   *websocket.Conn
	out  chan any
	done chan struct{}
	once sync.Once
}

func NewConn(c *websocket.Conn) *Conn {
	conn := &Conn{
		ws:   c,
		out:  make(chan any, sendBuffer),
		done: make(chan struct{}),
	}
	go conn.pump()
	return conn
}

func (c *Conn) pump() {
	for {
		select {
		case v := <-c.out:
			if err := c.WriteJSON(v); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Enqueue queues v for delivery without waiting on the network. It reports
// false when the connection is closed or its buffer is full; the message is
// dropped in that case.
func (c *Conn) Enqueue(v any) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- v:
		return true
	default:
		return false
	}
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *Conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Conn) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.ws.Close()
}

// Hub tracks the open connections of each user. A user may hold several.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: map[string]map[*Conn]struct{}{}}
}

func (h *Hub) Add(userID string, c *Conn) {
	h.mu.Lock()
	set, ok := h.conns[userID]
	if !ok {
		set = map[*Conn]struct{}{}
		h.conns[userID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(userID string, c *Conn) {
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Count(userID string) int {
	h.mu.RLock()
	n := len(h.conns[userID])
	h.mu.RUnlock()
	return n
}

// Send queues v on every connection of userID and returns how many accepted
// it. It never blocks on a slow peer; connections whose write fails are
// closed by their pump and reaped by their read loop.
func (h *Hub) Send(userID string, v any) int {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	queued := 0
	for _, c := range targets {
		if c.Enqueue(v) {
			queued++
		}
	}
	return queued
}
