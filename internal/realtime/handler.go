package realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

// TokenVerifier checks an access token and yields the owning user.
// The registry itself never sees raw credentials.
type TokenVerifier interface {
	VerifyAccessToken(token string) (userID string, err error)
}

// Handler upgrades authenticated HTTP requests to WebSocket live
// sessions and pumps registry events onto the connection.
type Handler struct {
	*transport.BaseHandler
	registry     *Registry
	verifier     TokenVerifier
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	pingInterval time.Duration
}

func NewHandler(registry *Registry, verifier TokenVerifier, cfg internal.RealtimeConfig) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}

	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		registry:    registry,
		verifier:    verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients authenticate with a token, not cookies, so
			// cross-origin upgrades carry no ambient credentials.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
		pingInterval: pingInterval,
	}
}

// Serve authenticates, upgrades, and attaches a live session. The
// token is verified before any registry state is touched; a bad token
// never produces a session.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = h.ExtractTokenFromHeader(r)
	}
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	userID, err := h.verifier.VerifyAccessToken(token)
	if err != nil {
		h.Logger.Warn("live session rejected", "error", err)
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.Logger.Error("websocket upgrade failed", "error", err, "user_id", userID)
		return
	}

	session := h.registry.Attach(userID)
	h.Logger.Info("live session attached", "user_id", userID, "session_id", session.ID)

	go h.writePump(conn, session)
	h.readPump(conn, session)
}

// writePump drains the session buffer onto the connection and keeps the
// peer alive with pings. A write failure tears the session down; the
// registry close of Events ends the loop.
func (h *Handler) writePump(conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		h.registry.Detach(session)
		conn.Close()
	}()

	for {
		select {
		case env, ok := <-session.Events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteJSON(env); err != nil {
				h.Logger.Warn("live session write failed, detaching",
					"error", err,
					"user_id", session.UserID,
					"session_id", session.ID)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes inbound frames only to notice the peer going away.
func (h *Handler) readPump(conn *websocket.Conn, session *Session) {
	defer func() {
		h.registry.Detach(session)
		conn.Close()
		h.Logger.Info("live session detached", "user_id", session.UserID, "session_id", session.ID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
