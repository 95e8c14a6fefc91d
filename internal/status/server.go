package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// recentNotificationLimit bounds the notification ring exposed by the API.
const recentNotificationLimit = 20

// View is the JSON document served at /api/status.
type View struct {
	// Server is the monitored server address.
	Server string `json:"server"`

	// ServerType is the monitored edition ("java" or "bedrock").
	ServerType string `json:"server_type"`

	// Known is false until a first snapshot has been confirmed.
	Known bool `json:"known"`

	// Online is the confirmed online state.
	Online bool `json:"online"`

	// PlayerCount and PlayerMax are the confirmed player totals.
	PlayerCount int `json:"player_count"`
	PlayerMax   int `json:"player_max"`

	// Version is the confirmed server version, if reported.
	Version string `json:"version,omitempty"`

	// OfflineStreak counts consecutive offline-or-failed polls.
	OfflineStreak int `json:"offline_streak"`

	// CheckedAt is the time of the last completed poll cycle.
	CheckedAt time.Time `json:"checked_at"`

	// RecentNotifications holds the most recent rendered notifications,
	// oldest first.
	RecentNotifications []string `json:"recent_notifications"`
}

// Tracker holds the current [View] behind a mutex.
//
// The monitor writes once per poll cycle; HTTP handlers read concurrently.
type Tracker struct {
	mu   sync.RWMutex
	view View
}

// NewTracker creates a tracker seeded with the server identity.
func NewTracker(server, serverType string) *Tracker {
	return &Tracker{view: View{Server: server, ServerType: serverType}}
}

// Update records the outcome of a completed poll cycle and appends the
// cycle's rendered notifications to the ring.
func (t *Tracker) Update(view View, notifications []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	view.Server = t.view.Server
	view.ServerType = t.view.ServerType
	view.RecentNotifications = append(t.view.RecentNotifications, notifications...)
	if overflow := len(view.RecentNotifications) - recentNotificationLimit; overflow > 0 {
		view.RecentNotifications = view.RecentNotifications[overflow:]
	}
	t.view = view
}

// Current returns a copy of the current view.
func (t *Tracker) Current() View {
	t.mu.RLock()
	defer t.mu.RUnlock()

	view := t.view
	view.RecentNotifications = append([]string(nil), t.view.RecentNotifications...)
	return view
}

// Server serves the status API.
//
// Endpoints:
//   - GET /healthz: liveness probe, always 200 once the server is up
//   - GET /api/status: the current [View] as JSON
type Server struct {
	tracker    *Tracker
	port       int
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a status [Server]. It is not started until
// [Server.Start] is called.
func NewServer(tracker *Tracker, port int, logger *slog.Logger) *Server {
	return &Server{
		tracker: tracker,
		port:    port,
		logger:  logger,
	}
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns after confirming the server is
// listening. The server runs until the context is cancelled, then shuts
// down gracefully with a 5-second timeout.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/status", s.handleStatus)

	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: mux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("status server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleHealthz answers liveness probes.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleStatus returns the current view as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(s.tracker.Current()); err != nil {
		s.logger.Error("failed to encode status response", "error", err)
	}
}
