package web

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/evcraddock/sentiboard/internal/particles"
)

// handleBackgroundSocket streams particle frames until the client goes
// away. Each connection simulates its own field.
func (s *Server) handleBackgroundSocket(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Background {
		http.NotFound(w, r)
		return
	}

	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("closing background socket", "error", err)
		}
	}()

	done := make(chan struct{})
	readPump(conn, done, nil)

	fps := s.cfg.BackgroundFPS
	if fps <= 0 {
		fps = DefaultBackgroundFPS
	}

	field := particles.NewField(particles.DefaultConfig(), rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	frames := s.clock.NewTicker(time.Second / time.Duration(fps))
	defer frames.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return
		case <-s.shutdown:
			writeClose(conn)
			return
		case <-frames.C:
			field.Step()
			if err := writeJSON(conn, field.Frame()); err != nil {
				slog.Debug("writing frame", "error", err)
				return
			}
		case <-pings.C:
			if err := writePing(conn); err != nil {
				return
			}
		}
	}
}
