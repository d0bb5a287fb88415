package adminweb

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chickhealth-client-go/internal/api"
)

// StatsSample is one push on the dashboard socket: fresh backend stats plus
// a host reading. Errors on an individual poll are skipped, not surfaced.
type StatsSample struct {
	Stats api.AdminStats `json:"stats"`
	Host  HostSample     `json:"host"`
}

// StatsHub keeps the dashboard page live. Each admin socket gets its own
// poll loop driven by that session's client, so the hub itself never holds
// backend credentials.
type StatsHub struct {
	server *Server
	log    *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]context.CancelFunc
}

func NewStatsHub(server *Server, log *zap.Logger) *StatsHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsHub{
		server: server,
		log:    log,
		conns:  make(map[*websocket.Conn]context.CancelFunc),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StatsSocket upgrades an authenticated dashboard page to a live stats feed.
func (s *Server) StatsSocket(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Warn("stats socket upgrade failed", zap.Error(err))
		return
	}
	s.Hub.serve(conn, sess)
}

func (h *StatsHub) serve(conn *websocket.Conn, sess *Session) {
	ctx, cancel := context.WithCancel(context.Background())
	h.mu.Lock()
	h.conns[conn] = cancel
	h.mu.Unlock()

	go h.poll(ctx, conn, sess)

	// Reader loop exists only to notice the peer going away.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *StatsHub) poll(ctx context.Context, conn *websocket.Conn, sess *Session) {
	interval := time.Duration(h.server.Config.StatsPollSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := sess.Client.AdminStats(ctx)
		if err != nil {
			if api.IsUnauthorized(err) {
				h.drop(conn)
				return
			}
			h.log.Debug("stats poll failed", zap.Error(err))
		} else {
			sample := StatsSample{
				Stats: stats,
				Host:  CaptureHostSample(h.server.Config.HealthDiskPath),
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(sample); err != nil {
				h.drop(conn)
				return
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (h *StatsHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	cancel, ok := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if ok {
		cancel()
	}
	_ = conn.Close()
}

// Shutdown closes every live socket.
func (h *StatsHub) Shutdown() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		h.drop(conn)
	}
}
