package ipc

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The bot serves local engines and browser viewers alike.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WebSocketTransport carries one envelope per text message.
type WebSocketTransport struct {
	conn *websocket.Conn
}

func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	return &WebSocketTransport{conn: conn}
}

func (t *WebSocketTransport) ReadEnvelope() (Envelope, error) {
	var env Envelope
	if err := t.conn.ReadJSON(&env); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return Envelope{}, io.EOF
		}
		return Envelope{}, fmt.Errorf("read websocket: %w", err)
	}
	return env, nil
}

func (t *WebSocketTransport) WriteEnvelope(env Envelope) error {
	if err := t.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write websocket: %w", err)
	}
	return nil
}

func (t *WebSocketTransport) Close() error { return t.conn.Close() }

// WebSocketHandler upgrades each request and hands the transport to serve,
// which owns it until it returns.
func WebSocketHandler(serve func(Transport)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("websocket connection accepted", "remote", r.RemoteAddr)
		serve(NewWebSocketTransport(conn))
	})
}
