package adminweb

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"chickhealth-client-go/internal/api"
)

const crudFallback = "Thao tác thất bại. Vui lòng thử lại."

type diseaseListView struct {
	User     api.UserProfile
	Diseases []api.Disease
	Error    string
}

func (s *Server) DiseaseList(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	diseases, err := sess.Client.ListDiseases(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "diseases.html", diseaseListView{User: sess.User, Diseases: diseases})
}

type diseaseFormView struct {
	User    api.UserProfile
	EditID  int
	Disease api.Disease
	Error   string
}

func (s *Server) DiseaseForm(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	view := diseaseFormView{User: sess.User}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		disease, err := sess.Client.GetDisease(r.Context(), id)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		view.EditID = id
		view.Disease = disease
	}
	s.render(w, "disease_form.html", view)
}

// DiseaseFormSubmit handles both the in-form step/medicine editing actions
// and the final save. Steps and medicines live entirely in the form until
// save, when the whole disease is sent in one request; the list page then
// re-fetches from the backend.
func (s *Server) DiseaseFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := diseaseFormView{User: sess.User}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		view.EditID = id
	}
	view.Disease = parseDiseaseForm(r)

	action := r.PostFormValue("action")
	switch {
	case action == "add_step":
		view.Disease.TreatmentSteps = api.RenumberSteps(append(view.Disease.TreatmentSteps, api.TreatmentStep{Medicines: []api.Medicine{}}))
		s.render(w, "disease_form.html", view)
		return

	case strings.HasPrefix(action, "remove_step:"):
		index, err := strconv.Atoi(strings.TrimPrefix(action, "remove_step:"))
		if err == nil {
			view.Disease.TreatmentSteps = api.RemoveStep(view.Disease.TreatmentSteps, index)
		}
		s.render(w, "disease_form.html", view)
		return

	case strings.HasPrefix(action, "add_med:"):
		index, err := strconv.Atoi(strings.TrimPrefix(action, "add_med:"))
		if err == nil && index >= 0 && index < len(view.Disease.TreatmentSteps) {
			step := &view.Disease.TreatmentSteps[index]
			step.Medicines = append(step.Medicines, api.Medicine{})
		}
		s.render(w, "disease_form.html", view)
		return
	}

	if view.Disease.Code == "" || view.Disease.NameVI == "" {
		view.Error = "Mã bệnh và tên bệnh là bắt buộc."
		s.render(w, "disease_form.html", view)
		return
	}

	var err error
	if view.EditID > 0 {
		_, err = sess.Client.UpdateDisease(r.Context(), view.EditID, view.Disease)
	} else {
		_, err = sess.Client.CreateDisease(r.Context(), view.Disease)
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			s.handleAPIError(w, r, err)
			return
		}
		view.Error = api.ErrorDetail(err, crudFallback)
		s.render(w, "disease_form.html", view)
		return
	}
	http.Redirect(w, r, "/diseases", http.StatusSeeOther)
}

// DiseaseDelete requires explicit confirmation from the form.
func (s *Server) DiseaseDelete(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, "/diseases", http.StatusSeeOther)
		return
	}
	if err := sess.Client.DeleteDisease(r.Context(), id); err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/diseases", http.StatusSeeOther)
}

// parseDiseaseForm rebuilds the disease, its steps and their medicines from
// the indexed form fields. Step order is recomputed 1..N from slice order.
func parseDiseaseForm(r *http.Request) api.Disease {
	disease := api.Disease{
		Code:           strings.TrimSpace(r.PostFormValue("code")),
		NameVI:         strings.TrimSpace(r.PostFormValue("name_vi")),
		NameEN:         strings.TrimSpace(r.PostFormValue("name_en")),
		Symptoms:       r.PostFormValue("symptoms"),
		Cause:          r.PostFormValue("cause"),
		Prevention:     r.PostFormValue("prevention"),
		Source:         strings.TrimSpace(r.PostFormValue("source")),
		TreatmentSteps: []api.TreatmentStep{},
	}

	stepCount, _ := strconv.Atoi(r.PostFormValue("step_count"))
	for i := 0; i < stepCount; i++ {
		step := api.TreatmentStep{
			Description: r.PostFormValue(fmt.Sprintf("step_desc_%d", i)),
			Action:      r.PostFormValue(fmt.Sprintf("step_action_%d", i)),
			Medicines:   []api.Medicine{},
		}
		medCount, _ := strconv.Atoi(r.PostFormValue(fmt.Sprintf("med_count_%d", i)))
		for j := 0; j < medCount; j++ {
			step.Medicines = append(step.Medicines, api.Medicine{
				Name:             strings.TrimSpace(r.PostFormValue(fmt.Sprintf("med_name_%d_%d", i, j))),
				ActiveIngredient: strings.TrimSpace(r.PostFormValue(fmt.Sprintf("med_ingredient_%d_%d", i, j))),
				Dosage:           strings.TrimSpace(r.PostFormValue(fmt.Sprintf("med_dosage_%d_%d", i, j))),
			})
		}
		disease.TreatmentSteps = append(disease.TreatmentSteps, step)
	}
	disease.TreatmentSteps = api.RenumberSteps(disease.TreatmentSteps)
	return disease
}
