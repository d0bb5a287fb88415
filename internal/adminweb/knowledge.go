package adminweb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"chickhealth-client-go/internal/api"
)

type knowledgeListView struct {
	User    api.UserProfile
	Entries []api.KnowledgeEntry
}

func (s *Server) KnowledgeList(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	entries, err := sess.Client.ListAdminKnowledge(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "knowledge.html", knowledgeListView{User: sess.User, Entries: entries})
}

type knowledgeFormView struct {
	User   api.UserProfile
	EditID int
	Entry  api.KnowledgeEntry
	Error  string
}

func (s *Server) KnowledgeForm(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	view := knowledgeFormView{User: sess.User}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		entries, err := sess.Client.ListAdminKnowledge(r.Context())
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		for _, entry := range entries {
			if entry.ID == id {
				view.EditID = id
				view.Entry = entry
				break
			}
		}
		if view.EditID == 0 {
			http.NotFound(w, r)
			return
		}
	}
	s.render(w, "knowledge_form.html", view)
}

func (s *Server) KnowledgeFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	view := knowledgeFormView{User: sess.User}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		view.EditID = id
	}
	view.Entry = api.KnowledgeEntry{
		Category: strings.TrimSpace(r.PostFormValue("category")),
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Content:  r.PostFormValue("content"),
		Source:   strings.TrimSpace(r.PostFormValue("source")),
	}
	if view.Entry.Title == "" || view.Entry.Content == "" {
		view.Error = "Tiêu đề và nội dung là bắt buộc."
		s.render(w, "knowledge_form.html", view)
		return
	}

	var err error
	if view.EditID > 0 {
		_, err = sess.Client.UpdateKnowledge(r.Context(), view.EditID, view.Entry)
	} else {
		_, err = sess.Client.CreateKnowledge(r.Context(), view.Entry)
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			s.handleAPIError(w, r, err)
			return
		}
		view.Error = api.ErrorDetail(err, crudFallback)
		s.render(w, "knowledge_form.html", view)
		return
	}
	http.Redirect(w, r, "/knowledge", http.StatusSeeOther)
}

func (s *Server) KnowledgeDelete(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, "/knowledge", http.StatusSeeOther)
		return
	}
	if err := sess.Client.DeleteKnowledge(r.Context(), id); err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/knowledge", http.StatusSeeOther)
}
