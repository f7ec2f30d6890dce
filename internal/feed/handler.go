package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/ashureev/arctic-quest/internal/identity"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

// clientMessage is a frame received from the browser.
type clientMessage struct {
	Type string `json:"type"`
}

// Handler upgrades requests to the per-user event feed.
type Handler struct {
	hub            *Hub
	games          *game.Manager
	originPatterns []string
}

// NewHandler creates a feed handler. In development every origin is accepted;
// otherwise only the hosts of allowedOrigins (plus same-origin requests).
func NewHandler(hub *Hub, games *game.Manager, allowedOrigins []string, isDev bool) *Handler {
	return &Handler{
		hub:            hub,
		games:          games,
		originPatterns: originPatterns(allowedOrigins, isDev),
	}
}

func originPatterns(origins []string, isDev bool) []string {
	if isDev {
		return []string{"*"}
	}
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := identity.SessionIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	slog.Info("Feed connection request", "user_id", userID, "session_id", sessionID, "ip", identity.IPFromRequest(r))

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Warn("Failed to accept feed WebSocket", "error", err, "user_id", userID)
		return
	}

	c := h.hub.register(userID, sessionID)
	defer h.hub.unregister(userID, sessionID, c)

	session := h.games.GetOrCreate(userID)
	unsubscribe := session.SubscribeBalance(func(balance int) {
		if !c.offer(balanceMessage(balance)) {
			h.hub.dropped.Add(1)
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c.offer(balanceMessage(session.WalletBalance()))

	go func() {
		defer cancel()
		h.readLoop(ctx, ws, c, userID)
	}()

	reason := h.writeLoop(ctx, ws, c, userID)
	if closeErr := ws.Close(websocket.StatusNormalClosure, reason); closeErr != nil {
		slog.Debug("Failed to close feed websocket", "error", closeErr, "user_id", userID)
	}
	slog.Info("Feed connection ended", "user_id", userID, "session_id", sessionID, "reason", reason)
}

func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn, c *client, userID string) {
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, ws, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				slog.Debug("Feed read error", "error", err, "user_id", userID)
			}
			return
		}
		if msg.Type == "ping" {
			c.offer(Message{Type: "pong", At: time.Now().Unix()})
		}
	}
}

// writeLoop drains the client's queue until the connection or client ends
// and returns the close reason.
func (h *Handler) writeLoop(ctx context.Context, ws *websocket.Conn, c *client, userID string) string {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "connection closed"
		case <-c.done:
			return "session ended"
		case msg := <-c.send:
			if err := writeJSON(ctx, ws, msg); err != nil {
				slog.Debug("Feed write error", "error", err, "user_id", userID)
				return "write failed"
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := ws.Ping(pingCtx)
			cancel()
			if err != nil {
				return "ping failed"
			}
		}
	}
}

func writeJSON(ctx context.Context, ws *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, ws, v)
}
