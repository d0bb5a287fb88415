package adminweb

import (
	"net/http"
	"strconv"

	"chickhealth-client-go/internal/api"
)

type dashboardView struct {
	User       api.UserProfile
	Stats      api.AdminStats
	RecentLogs []logRow
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	stats, err := sess.Client.AdminStats(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	logs, err := sess.Client.AdminRecentLogs(r.Context(), 10)
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}

	s.render(w, "dashboard.html", dashboardView{
		User:       sess.User,
		Stats:      stats,
		RecentLogs: logRows(sess.Client, logs),
	})
}

type logRow struct {
	api.HistoryEntry
	ImageHref   string
	StatusClass string
}

type logsView struct {
	User  api.UserProfile
	Limit int
	Logs  []logRow
}

func (s *Server) DiagnosisLogs(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := sess.Client.AdminRecentLogs(r.Context(), limit)
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "logs.html", logsView{User: sess.User, Limit: limit, Logs: logRows(sess.Client, logs)})
}

func logRows(client *api.Client, entries []api.HistoryEntry) []logRow {
	rows := make([]logRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, logRow{
			HistoryEntry: entry,
			ImageHref:    client.ResolveAsset(entry.ImageURL),
			StatusClass:  statusClass(entry.Status),
		})
	}
	return rows
}

// statusClass maps the backend's status enum to a display class. The status
// field is the only input; disease names are never inspected.
func statusClass(status string) string {
	switch status {
	case "Sick":
		return "danger"
	case "Healthy":
		return "ok"
	default:
		return "pending"
	}
}

type usageView struct {
	User  api.UserProfile
	Usage api.UsageStats
}

func (s *Server) UsagePage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	usage, err := sess.Client.UsageStats(r.Context())
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "usage.html", usageView{User: sess.User, Usage: usage})
}
