// Package eventstream serves the run event history over a websocket so
// external viewers can follow transcription progress live.
package eventstream

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"video-to-transcript/internal/jobs"
)

const pollInterval = 250 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server streams bus events to websocket subscribers. Each subscriber
// receives the retained history first, then follows new events as they are
// published.
type Server struct {
	bus *jobs.EventBus
}

// NewServer creates a stream server over the given bus.
func NewServer(bus *jobs.EventBus) *Server {
	return &Server{bus: bus}
}

// Handler returns the http handler for the /events endpoint.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serve)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Reads are only consumed to detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.follow(r.Context(), conn, closed)
}

func (s *Server) follow(ctx context.Context, conn *websocket.Conn, closed <-chan struct{}) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var lastSeq int64
	for {
		for _, event := range s.bus.Since(lastSeq) {
			if err := conn.WriteJSON(event); err != nil {
				return
			}
			lastSeq = event.Seq
		}

		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}

// ListenAndServe blocks serving the stream on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/events", s.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
