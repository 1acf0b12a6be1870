package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const broadcastBuffer = 64

// Message types pushed to clients.
const (
	MessageSnapshot = "snapshot"
	MessageUpdate   = "update"
	MessageError    = "error"
)

// Dispatcher is the game surface the hub needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, action models.Action) (models.GameState, error)
	Snapshot() models.GameState
}

// Message is the envelope written to websocket clients.
type Message struct {
	Type    string            `json:"type"`
	Action  models.ActionType `json:"action,omitempty"`
	State   *models.StateView `json:"state,omitempty"`
	Effects []models.Effect   `json:"effects,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Hub fans game updates out to every connected websocket client.
type Hub struct {
	dispatcher Dispatcher
	upgrader   websocket.Upgrader
	logger     *zap.Logger

	clients    map[*Client]bool
	closed     bool
	broadcast  chan []byte
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}

// NewHub initializes a hub. Call Run before serving connections.
func NewHub(dispatcher Dispatcher, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Presentation clients are served from other origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles disconnects and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("websocket hub shutting down")
			return
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("websocket client disconnected", zap.String("remote", client.remote))
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop it and let its pumps wind down.
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("dropping slow websocket client", zap.String("remote", client.remote))
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an update for every client. It never blocks the caller; updates are
// dropped when the broadcast queue is full.
func (h *Hub) Publish(update models.Update) {
	view := models.NewStateView(update.State)
	payload, err := json.Marshal(Message{
		Type:    MessageUpdate,
		Action:  update.Action,
		State:   &view,
		Effects: update.Effects,
	})
	if err != nil {
		h.logger.Error("failed to serialize update", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast queue full, update dropped", zap.String("action", string(update.Action)))
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and starts the client pumps.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(h, conn)
	if !h.add(client) {
		conn.Close()
		return
	}

	// Registered before the snapshot is taken, so no update is missed in between.
	client.reply(Message{Type: MessageSnapshot, State: viewOf(h.dispatcher.Snapshot())})

	go client.writePump()
	go client.readPump()
}

func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = true
	h.logger.Debug("websocket client connected", zap.String("remote", c.remote))
	return true
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func viewOf(state models.GameState) *models.StateView {
	view := models.NewStateView(state)
	return &view
}
