package handler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 20 * time.Second
	writeWait    = 5 * time.Second
)

var clientCounter uint64

// displayConn - tulis ke socket satu per satu, hub dan ping loop sama-sama menulis
type displayConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
	id   string
}

func (d *displayConn) WriteMessage(messageType int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_ = d.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return d.conn.WriteMessage(messageType, data)
}

func (d *displayConn) Close() error {
	return d.conn.Close()
}

// QueueWebSocket - layar display menerima proyeksi antrian setiap ada perubahan
func (h *Handler) QueueWebSocket(c *websocket.Conn) {
	client := &displayConn{
		conn: c,
		id:   fmt.Sprintf("client-%d", atomic.AddUint64(&clientCounter, 1)),
	}
	log := h.logger.WithField("client", client.id)
	log.WithField("remote", c.RemoteAddr().String()).Debug("display connecting")

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := client.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.WithError(err).Debug("display ping failed")
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
			) {
				log.WithError(err).Info("display closed unexpectedly")
			}
			return
		}
	}
}
