// Package web serves PickleCatch to browsers: an embedded canvas client over
// HTTP and one server-side game per WebSocket connection.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/replay"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Addr     string            // HTTP listen address
	Game     config.GameConfig // configuration every session plays with
	TickRate int               // simulation ticks per second
	Seed     int64             // 0 seeds each session from the clock
	Record   bool              // record finished runs
	Store    *storage.Store    // nil keeps recordings unsaved
	Logger   *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:     ":8080",
		Game:     config.Default(),
		TickRate: 60,
		Record:   true,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Server tracks live connections and their games.
type Server struct {
	cfg    ServerConfig
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	clients map[string]*Client
}

// NewServer creates a server. Call Close to stop every session.
func NewServer(cfg ServerConfig) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("picklecatch-web")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[string]*Client),
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded at build time
	}
	files := http.FileServer(http.FS(static))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always revalidate so a redeploy reaches open tabs
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	}))

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/replays", s.handleReplays)

	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", "error", err)
		return
	}

	client := NewClient(s, conn, uuid.NewString(), extractIP(r))
	s.register(client)
	client.logger.Info("session started", "remote", client.remoteAddr)

	go client.WritePump()
	go client.ReadPump()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.unregister(client)
		client.Run(s.ctx)
		client.logger.Info("session ended", "remote", client.remoteAddr)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"sessions": s.Sessions()}) //nolint:errcheck
}

type replayJSON struct {
	ID         string  `json:"id"`
	Score      int     `json:"score"`
	Seed       int64   `json:"seed"`
	Ticks      uint64  `json:"ticks"`
	DurationMs float64 `json:"durationMs"`
	CreatedAt  string  `json:"createdAt"`
}

func (s *Server) handleReplays(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	out := []replayJSON{}
	if s.cfg.Store != nil {
		infos, err := s.cfg.Store.ListReplays(50)
		if err != nil {
			s.logger.Error("list replays", "error", err)
			http.Error(w, "cannot list replays", http.StatusInternalServerError)
			return
		}
		for _, info := range infos {
			out = append(out, replayJSON{
				ID:         info.ID,
				Score:      info.Score,
				Seed:       info.Seed,
				Ticks:      info.Ticks,
				DurationMs: info.DurationMs,
				CreatedAt:  info.CreatedAt.Format(time.RFC3339),
			})
		}
	}
	json.NewEncoder(w).Encode(out) //nolint:errcheck
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	s.clients[c.sessionID] = c
	s.mu.Unlock()
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.sessionID)
	s.mu.Unlock()
}

// Sessions returns the number of live connections.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// saveReplay stores a finished run and reports whether it was persisted.
func (s *Server) saveReplay(logger *log.Logger, r *replay.Replay) bool {
	if s.cfg.Store == nil {
		return false
	}
	if err := s.cfg.Store.SaveReplay(r); err != nil {
		logger.Warn("could not save replay", "id", r.ID, "error", err)
		return false
	}
	logger.Info("replay saved", "id", r.ID, "score", r.Score, "ticks", r.Ticks)
	return true
}

// Close ends every session and waits for their loops to stop.
func (s *Server) Close() {
	s.cancel()
	s.mu.Lock()
	for _, c := range s.clients {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// JoinURL returns the URL other devices on the LAN can open for addr.
// A bare port binds every interface, so the first non-loopback IPv4
// address is used; loopback is the fallback.
func JoinURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
		if ifaces, err := net.InterfaceAddrs(); err == nil {
			for _, a := range ifaces {
				if ipn, ok := a.(*net.IPNet); ok && !ipn.IP.IsLoopback() && ipn.IP.To4() != nil {
					host = ipn.IP.String()
					break
				}
			}
		}
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
