package adminweb

import (
	"net/http"
	"strings"

	"chickhealth-client-go/internal/api"
)

// settingKeys are the AI-provider keys the settings page edits. Unknown keys
// returned by the backend are shown read-only, never written back.
var settingKeys = []string{"ai_provider", "ai_model", "api_key"}

type settingsView struct {
	User       api.UserProfile
	Settings   map[string]string
	Error      string
	Saved      bool
	TestResult *api.TestAIResult
}

func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	settings, err := sess.Client.GetSettings(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "settings.html", settingsView{User: sess.User, Settings: settings})
}

// SettingsSubmit writes each changed key through the backend's single-pair
// endpoint, then re-fetches so the page shows the server's state.
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	current, err := sess.Client.GetSettings(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}

	view := settingsView{User: sess.User}
	for _, key := range settingKeys {
		value := strings.TrimSpace(r.PostFormValue(key))
		if value == "" || value == current[key] {
			continue
		}
		if err := sess.Client.UpdateSetting(r.Context(), key, value); err != nil {
			if api.IsUnauthorized(err) {
				s.handleAPIError(w, r, err)
				return
			}
			view.Error = api.ErrorDetail(err, crudFallback)
			break
		}
	}

	settings, err := sess.Client.GetSettings(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	view.Settings = settings
	view.Saved = view.Error == ""
	s.render(w, "settings.html", view)
}

// SettingsTestAI probes the submitted provider configuration without saving.
func (s *Server) SettingsTestAI(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	result, err := sess.Client.TestAI(r.Context(), api.TestAIRequest{
		Provider: strings.TrimSpace(r.PostFormValue("ai_provider")),
		Model:    strings.TrimSpace(r.PostFormValue("ai_model")),
		APIKey:   strings.TrimSpace(r.PostFormValue("api_key")),
	})
	view := settingsView{User: sess.User}
	if err != nil {
		if api.IsUnauthorized(err) {
			s.handleAPIError(w, r, err)
			return
		}
		view.TestResult = &api.TestAIResult{Status: "error", Message: api.ErrorDetail(err, crudFallback)}
	} else {
		view.TestResult = &result
	}

	settings, err := sess.Client.GetSettings(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	view.Settings = settings
	s.render(w, "settings.html", view)
}
