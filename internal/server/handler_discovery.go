package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "optrack API",
		Version:     "v1",
		Description: "Operator workflow tracking: submissions, status changes, comments and follow-ups",
		Endpoints: []endpointInfo{
			{"/api/v1/submissions", []string{"GET", "POST"}, "Filtered, sorted list of submissions (q, status, report_type, date_range, col.<column>, sort, dir, limit, offset). POST creates one submission per entry task"},
			{"/api/v1/submissions/{id}", []string{"GET", "PATCH"}, "Single submission; PATCH edits fields"},
			{"/api/v1/submissions/{id}/status", []string{"PUT"}, "Change status with a reason"},
			{"/api/v1/submissions/{id}/comments", []string{"POST"}, "Append a typed comment"},
			{"/api/v1/submissions/{id}/future-tasks", []string{"GET", "POST"}, "Follow-up tasks of a submission"},
			{"/api/v1/future-tasks/{tid}", []string{"DELETE"}, "Remove a follow-up task"},
			{"/api/v1/dashboard", []string{"GET"}, "Stats, operator-grouped table and report-type options (collapsed, groups, expanded)"},
			{"/api/v1/stats", []string{"GET"}, "Stat card counts"},
			{"/api/v1/columns/{column}", []string{"GET"}, "Distinct values of a filterable column"},
			{"/api/v1/archived", []string{"GET"}, "Archived submissions (read-only)"},
			{"/api/v1/archived/stats", []string{"GET"}, "Archived stat card counts"},
			{"/api/v1/reminders", []string{"GET"}, "Configured upload reminders"},
			{"/api/v1/reminders/active", []string{"GET"}, "Reminders due within 7 days"},
			{"/api/v1/activity", []string{"GET"}, "Recent activity, newest first"},
			{"/api/v1/admin/directory-refresh", []string{"POST"}, "Reapply relationship and reviewer mappings now"},
			{"/api/v1/export.xlsx", []string{"GET"}, "Current view as an XLSX workbook"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
