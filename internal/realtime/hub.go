package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"backend-triage/internal/models"
	"backend-triage/internal/queue"

	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultDebounce = 50 * time.Millisecond
	maxWriters      = 20
)

// Client is one connected display. *websocket.Conn satisfies it.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Message struct {
	Type      string           `json:"type"`
	Data      models.QueueView `json:"data"`
	Timestamp string           `json:"timestamp"`
}

// Hub pushes the queue projection to every registered display. Bursts of
// mutations collapse into one broadcast after the debounce delay.
type Hub struct {
	view     func() models.QueueView
	logger   logrus.FieldLogger
	debounce time.Duration

	mu      sync.RWMutex
	clients map[Client]struct{}

	timerMu sync.Mutex
	timer   *time.Timer
}

func NewHub(view func() models.QueueView, logger logrus.FieldLogger) *Hub {
	return &Hub{
		view:     view,
		logger:   logger,
		debounce: defaultDebounce,
		clients:  make(map[Client]struct{}),
	}
}

// Register adds c and sends it a fresh projection straight away.
func (h *Hub) Register(c Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", total).Debug("display registered")

	msg, err := h.buildMessage()
	if err != nil {
		h.logger.WithError(err).Warn("build initial queue message")
		return
	}
	h.write(c, msg)
}

func (h *Hub) Unregister(c Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		_ = c.Close()
		h.logger.WithField("clients", total).Debug("display unregistered")
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify schedules a broadcast; it implements queue.Notifier.
func (h *Hub) Notify(_ context.Context, _ queue.Event) error {
	h.timerMu.Lock()
	defer h.timerMu.Unlock()

	if h.timer != nil {
		h.timer.Reset(h.debounce)
		return nil
	}

	h.timer = time.AfterFunc(h.debounce, func() {
		h.timerMu.Lock()
		h.timer = nil
		h.timerMu.Unlock()

		h.Broadcast()
	})
	return nil
}

// Broadcast sends the current projection to all displays now.
func (h *Hub) Broadcast() {
	msg, err := h.buildMessage()
	if err != nil {
		h.logger.WithError(err).Warn("build queue message")
		return
	}

	h.mu.RLock()
	clients := make([]Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sem := make(chan struct{}, maxWriters)
	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		sem <- struct{}{}
		go func(c Client) {
			defer wg.Done()
			defer func() { <-sem }()
			h.write(c, msg)
		}(c)
	}
	wg.Wait()
}

func (h *Hub) write(c Client, msg []byte) {
	if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
		h.logger.WithError(err).Debug("display write failed, dropping client")
		h.Unregister(c)
	}
}

func (h *Hub) buildMessage() ([]byte, error) {
	view := h.view()
	b, err := json.Marshal(Message{
		Type:      "queue_update",
		Data:      view,
		Timestamp: view.GeneratedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal queue view")
	}
	return b, nil
}
