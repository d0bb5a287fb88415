package adminweb

import (
	"bufio"
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"chickhealth-client-go/internal/api"
	"chickhealth-client-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type contextKey string

const ctxSession contextKey = "session"

// Server renders the admin dashboard. It owns no business data: every page
// load re-fetches from the backend through the signed-in session's client.
type Server struct {
	Config    config.Config
	Log       *zap.Logger
	Sessions  *Registry
	Hub       *StatsHub
	templates *template.Template

	// newClient builds a per-session API client; swapped in tests.
	newClient func(tokens api.TokenSource, onUnauthorized func()) *api.Client
}

func NewServer(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	templates := template.Must(template.New("").Funcs(template.FuncMap{
		"percent": api.ConfidencePercent,
	}).ParseFS(templateFS, "templates/*.html"))

	s := &Server{
		Config:    cfg,
		Log:       log,
		Sessions:  NewRegistry(time.Duration(cfg.AdminSessionTTLSecs) * time.Second),
		templates: templates,
	}
	s.Hub = NewStatsHub(s, log)
	s.newClient = func(tokens api.TokenSource, onUnauthorized func()) *api.Client {
		return api.New(cfg.APIOrigin, api.Options{
			Timeout:        time.Duration(cfg.RequestTimeoutSecs) * time.Second,
			Tokens:         tokens,
			OnUnauthorized: onUnauthorized,
			Logger:         log,
		})
	}
	return s
}

func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(s.requestLogger)

	r.Get("/login", s.LoginPage)
	r.Post("/login", s.LoginSubmit)
	r.Post("/logout", s.Logout)
	r.Get("/healthz", s.Healthz)

	r.Group(func(protected chi.Router) {
		protected.Use(s.withSession)
		protected.Get("/", s.Dashboard)
		protected.Get("/logs", s.DiagnosisLogs)
		protected.Get("/usage", s.UsagePage)

		protected.Route("/diseases", func(diseases chi.Router) {
			diseases.Get("/", s.DiseaseList)
			diseases.Get("/new", s.DiseaseForm)
			diseases.Post("/new", s.DiseaseFormSubmit)
			diseases.Get("/{id}/edit", s.DiseaseForm)
			diseases.Post("/{id}/edit", s.DiseaseFormSubmit)
			diseases.Post("/{id}/delete", s.DiseaseDelete)
		})

		protected.Route("/knowledge", func(knowledge chi.Router) {
			knowledge.Get("/", s.KnowledgeList)
			knowledge.Get("/new", s.KnowledgeForm)
			knowledge.Post("/new", s.KnowledgeFormSubmit)
			knowledge.Get("/{id}/edit", s.KnowledgeForm)
			knowledge.Post("/{id}/edit", s.KnowledgeFormSubmit)
			knowledge.Post("/{id}/delete", s.KnowledgeDelete)
		})

		protected.Route("/users", func(users chi.Router) {
			users.Get("/", s.UserList)
			users.Get("/new", s.UserForm)
			users.Post("/new", s.UserFormSubmit)
			users.Get("/{id}/edit", s.UserForm)
			users.Post("/{id}/edit", s.UserFormSubmit)
			users.Post("/{id}/delete", s.UserDelete)
		})

		protected.Route("/settings", func(settings chi.Router) {
			settings.Get("/", s.SettingsPage)
			settings.Post("/", s.SettingsSubmit)
			settings.Post("/test", s.SettingsTestAI)
		})

		protected.Get("/export/logs.xlsx", s.ExportLogs)
		protected.Get("/export/usage.xlsx", s.ExportUsage)
		protected.Get("/ws/stats", s.StatsSocket)
	})

	return r
}

// withSession gates protected pages: no live session means a redirect to the
// login screen, never a rendered page.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessionFrom(r)
		if sess == nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) sessionFrom(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.Sessions.Get(cookie.Value)
}

func currentSession(r *http.Request) *Session {
	sess, _ := r.Context().Value(ctxSession).(*Session)
	return sess
}

// handleAPIError funnels every backend failure from a page handler: a 401
// destroys the session and routes back to login, anything else re-renders
// nothing and shows a plain error page.
func (s *Server) handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if api.IsUnauthorized(err) {
		if sess := currentSession(r); sess != nil {
			s.Sessions.Revoke(sess.ID)
		}
		clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.Log.Warn("backend call failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, api.ErrorDetail(err, "Không thể tải dữ liệu từ máy chủ."), http.StatusBadGateway)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.Log.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack keeps the websocket upgrade on /ws/stats working through the
// logging wrapper.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hijacker.Hijack()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.Log.Debug("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
