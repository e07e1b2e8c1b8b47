package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// chatConn serializes writes to one websocket connection. The relay and the
// ping loop both write, and the underlying conn allows one writer at a time.
type chatConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *chatConn) writeText(payload []byte) error {
	return c.write(websocket.TextMessage, payload)
}

func (c *chatConn) write(messageType int, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, payload)
}

func (c *chatConn) close(code int, text string) {
	_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
}

// readPump discards client frames after the request and calls onClose once
// the peer goes away or stops answering pings.
func (c *chatConn) readPump(onClose func()) {
	defer onClose()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pingPump keeps intermediaries from idling out a slow stream until done closes.
func (c *chatConn) pingPump(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
