package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendQueueSize = 64
	writeWait     = 10 * time.Second
)

var (
	ErrConnectionClosed = errors.New("ws: connection closed")
	ErrSendQueueFull    = errors.New("ws: send queue full")
)

// Transport is the part of *websocket.Conn that Connection needs.
type Transport interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	ReadJSON(v interface{}) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

var _ Transport = (*websocket.Conn)(nil)

// Connection owns one client socket. Writes go through a bounded queue that
// WritePump drains, so a slow reader never blocks a broadcaster.
type Connection struct {
	conn   Transport
	logger zerolog.Logger

	mu     sync.Mutex
	sendCh chan Message
	closed bool
}

func NewConnection(conn Transport, logger zerolog.Logger) *Connection {
	return &Connection{
		conn:   conn,
		logger: logger,
		sendCh: make(chan Message, sendQueueSize),
	}
}

// Send queues msg without blocking.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close is idempotent.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
	_ = c.conn.Close()
}

// WritePump drains the queue and pings the client every pingEvery. It returns
// after Close or on the first write error.
func (c *Connection) WritePump(pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug().Err(err).Msg("feed write failed")
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

// ReadPump hands each inbound message to handle until the client goes away
// or stays silent longer than idle. Pongs extend the deadline.
func (c *Connection) ReadPump(idle time.Duration, handle func(Message) error) {
	defer c.conn.Close()

	_ = c.conn.SetReadDeadline(time.Now().Add(idle))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idle))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("feed read failed")
			}
			return
		}
		if err := handle(msg); err != nil {
			c.logger.Warn().Err(err).Str("type", msg.Type).Msg("feed message rejected")
		}
	}
}
