package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxInboundSize = 4096
)

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, bool) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		slog.Warn("websocket upgrade failed", "path", r.URL.Path, "error", err)
		return nil, false
	}
	slog.Debug("websocket connected", "path", r.URL.Path, "ip", r.RemoteAddr)
	return conn, true
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func writePing(conn *websocket.Conn) error {
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func writeClose(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		slog.Debug("writing close frame", "error", err)
	}
}

// readPump reads until the peer goes away, passing text frames to handle,
// then closes done. A nil handle discards everything.
func readPump(conn *websocket.Conn, done chan<- struct{}, handle func([]byte)) {
	conn.SetReadLimit(maxInboundSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		close(done)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(done)
		for {
			typ, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read", "error", err)
				}
				return
			}
			if typ == websocket.TextMessage && handle != nil {
				handle(data)
			}
		}
	}()
}
