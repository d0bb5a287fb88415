package adminweb

import (
	"net/http"

	"go.uber.org/zap"
)

const loginFallback = "Email hoặc mật khẩu không đúng."

type loginView struct {
	Error string
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessionFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginView{})
}

// LoginSubmit signs in against the backend. The session is only created
// after both the token exchange and the profile fetch succeed, and only for
// superusers; everyone else stays on the login page.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login.html", loginView{Error: loginFallback})
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		s.render(w, "login.html", loginView{Error: "Vui lòng nhập đầy đủ email và mật khẩu."})
		return
	}

	id := s.Sessions.NewID()
	client := s.newClient(
		sessionTokens{registry: s.Sessions, id: id},
		func() { s.Sessions.Revoke(id) },
	)

	result, err := client.Login(r.Context(), email, password)
	if err != nil {
		s.Log.Info("login rejected", zap.String("email", email), zap.Error(err))
		s.render(w, "login.html", loginView{Error: loginFallback})
		return
	}

	// The token is not in the registry yet; fetch the profile with it
	// directly so a rejected token never becomes a session.
	probe := s.newClient(staticToken(result.AccessToken), nil)
	profile, err := probe.Me(r.Context())
	if err != nil {
		s.render(w, "login.html", loginView{Error: loginFallback})
		return
	}
	if !profile.IsSuperuser {
		s.render(w, "login.html", loginView{Error: "Tài khoản không có quyền quản trị."})
		return
	}

	s.Sessions.Create(id, result.AccessToken, profile, client)
	setSessionCookie(w, id, s.Sessions.ttl)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := s.sessionFrom(r); sess != nil {
		s.Sessions.Revoke(sess.ID)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// staticToken is a fixed TokenSource for the one profile probe during login.
type staticToken string

func (t staticToken) Token() string { return string(t) }
