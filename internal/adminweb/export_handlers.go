package adminweb

import (
	"net/http"

	"chickhealth-client-go/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) ExportLogs(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	logs, err := sess.Client.AdminRecentLogs(r.Context(), 1000)
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	book, err := export.DiagnosisLogWorkbook(logs)
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="diagnosis-logs.xlsx"`)
	_, _ = w.Write(book)
}

func (s *Server) ExportUsage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	usage, err := sess.Client.UsageStats(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	book, err := export.UsageWorkbook(usage)
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="ai-usage.xlsx"`)
	_, _ = w.Write(book)
}
