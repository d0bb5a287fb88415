package adminweb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"chickhealth-client-go/internal/api"
)

type userListView struct {
	User  api.UserProfile
	Users []api.User
}

func (s *Server) UserList(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	users, err := sess.Client.ListUsers(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "users.html", userListView{User: sess.User, Users: users})
}

type userFormView struct {
	User   api.UserProfile
	EditID int
	Form   api.UserUpsert
	Error  string
}

func (s *Server) UserForm(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	view := userFormView{User: sess.User, Form: api.UserUpsert{IsActive: true}}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		users, err := sess.Client.ListUsers(r.Context())
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		for _, user := range users {
			if user.ID == id {
				view.EditID = id
				view.Form = api.UserUpsert{
					Email:       user.Email,
					FullName:    user.FullName,
					Phone:       user.Phone,
					IsActive:    user.IsActive,
					IsSuperuser: user.IsSuperuser,
				}
				break
			}
		}
		if view.EditID == 0 {
			http.NotFound(w, r)
			return
		}
	}
	s.render(w, "user_form.html", view)
}

func (s *Server) UserFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	view := userFormView{User: sess.User}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		view.EditID = id
	}
	view.Form = api.UserUpsert{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
		Phone:       strings.TrimSpace(r.PostFormValue("phone")),
		Password:    r.PostFormValue("password"),
		IsActive:    r.PostFormValue("is_active") == "on",
		IsSuperuser: r.PostFormValue("is_superuser") == "on",
	}
	if view.Form.Phone == "" {
		view.Error = "Số điện thoại là bắt buộc."
		s.render(w, "user_form.html", view)
		return
	}
	if view.EditID == 0 && view.Form.Password == "" {
		view.Error = "Mật khẩu là bắt buộc khi tạo tài khoản."
		s.render(w, "user_form.html", view)
		return
	}

	var err error
	if view.EditID > 0 {
		_, err = sess.Client.UpdateUser(r.Context(), view.EditID, view.Form)
	} else {
		_, err = sess.Client.CreateUser(r.Context(), view.Form)
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			s.handleAPIError(w, r, err)
			return
		}
		view.Error = api.ErrorDetail(err, crudFallback)
		s.render(w, "user_form.html", view)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) UserDelete(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	if err := sess.Client.DeleteUser(r.Context(), id); err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
