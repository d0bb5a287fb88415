package adminweb

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"chickhealth-client-go/internal/api"
)

const sessionCookie = "chickhealth_admin"

// Session is one signed-in dashboard user. It carries the backend bearer
// token and a client bound to it; nothing is persisted server-side beyond
// this in-memory record.
type Session struct {
	ID        string
	Token     string
	User      api.UserProfile
	Client    *api.Client
	ExpiresAt time.Time
}

// Registry holds live sessions. A backend 401 on any session's client
// revokes that session, which sends the browser back to /login.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// NewID reserves a session ID so the per-session API client can be built
// with its token source before the session is registered.
func (r *Registry) NewID() string {
	return uuid.NewString()
}

func (r *Registry) Create(id, token string, user api.UserProfile, client *api.Client) *Session {
	s := &Session{
		ID:        id,
		Token:     token,
		User:      user,
		Client:    client,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(s.ExpiresAt) {
		r.Revoke(id)
		return nil
	}
	return s
}

func (r *Registry) Revoke(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Token implements api.TokenSource for one session ID, so revocation takes
// effect on the very next outgoing request.
type sessionTokens struct {
	registry *Registry
	id       string
}

func (t sessionTokens) Token() string {
	if s := t.registry.Get(t.id); s != nil {
		return s.Token
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
