package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard frontend is served from a different origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamClient is one WebSocket subscriber of a session
type streamClient struct {
	id        string
	sessionID string
	send      chan []byte
}

// SnapshotHub fans snapshot replacements out to the WebSocket subscribers
// of each dashboard session
type SnapshotHub struct {
	clients map[string]map[*streamClient]struct{}
	mutex   sync.RWMutex
	log     zerolog.Logger
}

// NewSnapshotHub creates an empty hub
func NewSnapshotHub() *SnapshotHub {
	return &SnapshotHub{
		clients: make(map[string]map[*streamClient]struct{}),
		log:     logger.WithComponent("snapshot-hub"),
	}
}

// Publish delivers an event to every subscriber of its session. It never
// blocks: a subscriber whose buffer is full is disconnected.
func (h *SnapshotHub) Publish(event models.SnapshotEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode snapshot event")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients[event.SessionID] {
		select {
		case client.send <- payload:
		default:
			h.log.Warn().Str("connection_id", client.id).Msg("Dropping slow stream subscriber")
			h.removeLocked(client)
		}
	}
}

// Subscribers returns the number of open streams for the session
func (h *SnapshotHub) Subscribers(sessionID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[sessionID])
}

func (h *SnapshotHub) register(client *streamClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[client.sessionID]
	if !ok {
		set = make(map[*streamClient]struct{})
		h.clients[client.sessionID] = set
	}
	set[client] = struct{}{}
}

func (h *SnapshotHub) unregister(client *streamClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(client)
}

// removeLocked drops the client and closes its channel. Caller must hold the lock.
func (h *SnapshotHub) removeLocked(client *streamClient) {
	set, ok := h.clients[client.sessionID]
	if !ok {
		return
	}
	if _, exists := set[client]; !exists {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.sessionID)
	}
}

// SnapshotSource provides a session's snapshot atomically with subscription
type SnapshotSource interface {
	Watch(sessionID string, attach func(states []models.ViewState))
}

// Serve upgrades the request and streams snapshot events for sessionID.
// The current snapshot of every view is sent first.
func (h *SnapshotHub) Serve(c *gin.Context, sessionID string, source SnapshotSource) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	client := &streamClient{
		id:        utils.GenerateUUID(),
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer+len(models.ViewNames)),
	}

	source.Watch(sessionID, func(states []models.ViewState) {
		for _, state := range states {
			payload, err := json.Marshal(models.SnapshotEvent{SessionID: sessionID, View: state})
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to encode initial snapshot")
				continue
			}
			client.send <- payload
		}
		h.register(client)
	})
	defer h.unregister(client)

	h.log.Info().Str("connection_id", client.id).Str("session", sessionID).Msg("Stream connection established")

	// Reader: only control frames are expected; any read error ends the stream
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			h.log.Info().Str("connection_id", client.id).Msg("Stream connection closed")
			return
		}
	}
}
