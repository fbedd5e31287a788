package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/sentiboard/internal/chat"
)

// chatCommand is a message from the widget.
type chatCommand struct {
	Type string `json:"type"` // open, close or message
	Text string `json:"text,omitempty"`
}

// chatEvent is a message to the widget.
type chatEvent struct {
	Type    string        `json:"type"` // message or error
	Message *chat.Message `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

const chatQueueSize = 16

// eventQueue buffers events for the socket writer. push gives up once the
// reader has finished or close has been called, so neither the read pump
// nor a reply timer blocks after the writer is gone.
type eventQueue struct {
	out  chan chatEvent
	done <-chan struct{}
	stop chan struct{}
}

func newEventQueue(size int, done <-chan struct{}) *eventQueue {
	return &eventQueue{
		out:  make(chan chatEvent, size),
		done: done,
		stop: make(chan struct{}),
	}
}

func (q *eventQueue) push(ev chatEvent) bool {
	select {
	case q.out <- ev:
		return true
	case <-q.done:
		return false
	case <-q.stop:
		return false
	}
}

func (q *eventQueue) close() { close(q.stop) }

// handleChatSocket runs the demo chat over a websocket. Pending bot
// replies are cancelled when the widget is closed or the socket drops.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("closing chat socket", "error", err)
		}
	}()

	done := make(chan struct{})
	queue := newEventQueue(chatQueueSize, done)
	defer queue.close()

	emit := func(ev chatEvent) { queue.push(ev) }

	sess := chat.NewSession(s.clock, func(m chat.Message) {
		emit(chatEvent{Type: "message", Message: &m})
	})
	defer sess.Shutdown()

	readPump(conn, done, func(data []byte) {
		var cmd chatCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			emit(chatEvent{Type: "error", Error: "malformed message"})
			return
		}
		switch cmd.Type {
		case "open":
			sess.Open()
		case "close":
			if n := sess.Close(); n > 0 {
				slog.Debug("chat replies cancelled", "count", n)
			}
		case "message":
			if _, err := sess.Submit(cmd.Text); err != nil && !errors.Is(err, chat.ErrEmptyMessage) {
				emit(chatEvent{Type: "error", Error: err.Error()})
			}
		default:
			emit(chatEvent{Type: "error", Error: "unknown message type"})
		}
	})

	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return
		case <-s.shutdown:
			writeClose(conn)
			return
		case ev := <-queue.out:
			if err := writeJSON(conn, ev); err != nil {
				slog.Debug("writing chat event", "error", err)
				return
			}
		case <-pings.C:
			if err := writePing(conn); err != nil {
				return
			}
		}
	}
}
