// Package notification entrega eventos em tempo real aos usuários conectados via websocket.
package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

type client struct {
	userID   string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	lastSeen atomic.Int64
	once     sync.Once
}

func (c *client) touch(t time.Time) {
	c.lastSeen.Store(t.UnixNano())
}

func (c *client) silentFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, c.lastSeen.Load()))
}

func (c *client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) close() {
	c.once.Do(func() {
		_ = c.conn.Close()
	})
}

// HubConfig agrupa os parâmetros do Hub
type HubConfig struct {
	PingInterval   time.Duration
	PongTimeout    time.Duration
	AllowedOrigins []string
}

// Hub mantém no máximo uma conexão por usuário e implementa ports.Notifier
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	closed  bool

	upgrader     websocket.Upgrader
	pingInterval time.Duration
	pongTimeout  time.Duration
	logger       ports.Logger
}

// NewHub cria o Hub; deve ser criado uma única vez e injetado onde for usado
func NewHub(cfg HubConfig, logger ports.Logger) *Hub {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.PongTimeout < cfg.PingInterval {
		cfg.PongTimeout = 2 * cfg.PingInterval
	}

	h := &Hub{
		clients:      make(map[string]*client),
		pingInterval: cfg.PingInterval,
		pongTimeout:  cfg.PongTimeout,
		logger:       logging.Component(logger, "notification_hub"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeWS faz o upgrade da conexão de um usuário já autenticado e bloqueia até ela terminar.
// Uma conexão nova do mesmo usuário substitui a anterior.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{userID: userID, conn: conn}
	c.touch(time.Now())

	if !h.register(c) {
		c.close()
		return nil
	}
	defer h.drop(c)

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		c.touch(time.Now())
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("connection closed", logging.FieldUserID, userID, logging.FieldError, err)
			}
			return nil
		}
		c.touch(time.Now())
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	old := h.clients[c.userID]
	h.clients[c.userID] = c
	h.mu.Unlock()

	if old != nil {
		old.close()
	}
	h.logger.Debug("client connected", logging.FieldUserID, c.userID)
	return true
}

// drop remove o cliente apenas se ele ainda for a conexão registrada do usuário
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()
	c.close()
}

// Run executa a varredura de vivacidade até o contexto ser cancelado
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep(time.Now())
		}
	}
}

func (h *Hub) sweep(now time.Time) {
	for _, c := range h.snapshot(nil) {
		if c.silentFor(now) > h.pongTimeout {
			h.logger.Info("removing unresponsive connection", logging.FieldUserID, c.userID)
			h.drop(c)
			continue
		}
		if err := c.conn.WriteControl(websocket.PingMessage, nil, now.Add(writeWait)); err != nil {
			h.logger.Warn("failed to send ping", logging.FieldUserID, c.userID, logging.FieldError, err)
			h.drop(c)
		}
	}
}

func (h *Hub) snapshot(userIDs []string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(userIDs) == 0 {
		all := make([]*client, 0, len(h.clients))
		for _, c := range h.clients {
			all = append(all, c)
		}
		return all
	}

	targets := make([]*client, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	return targets
}

// Notify envia o evento aos usuários listados (ou a todos) e informa se alguém recebeu
func (h *Hub) Notify(ctx context.Context, event ports.Event, userIDs ...string) bool {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "type", event.Type, logging.FieldError, err)
		return false
	}

	delivered := 0
	for _, c := range h.snapshot(userIDs) {
		if ctx.Err() != nil {
			break
		}
		if err := c.write(data); err != nil {
			h.logger.Warn("failed to deliver event", logging.FieldUserID, c.userID, logging.FieldError, err)
			h.drop(c)
			continue
		}
		delivered++
	}
	return delivered > 0
}

// Connected informa se o usuário tem uma conexão ativa
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Count retorna o número de conexões ativas
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close encerra todas as conexões; novas conexões passam a ser recusadas
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
