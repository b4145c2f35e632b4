package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/me/optrack/internal/config"
	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/internal/store"
	"github.com/me/optrack/internal/tracker"
	"github.com/me/optrack/pkg/model"
)

var fixedNow = time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testTracker(t *testing.T, now time.Time) *tracker.Service {
	t.Helper()
	logger := testLogger()
	st, err := store.NewSQLiteStore(logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := seed.Load(ctx, st, seed.Options{}, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	catalog, err := seed.LoadCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return tracker.New(st, catalog, logger).WithClock(func() time.Time { return now })
}

func testServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(config.DefaultServerConfig(), testTracker(t, fixedNow), testLogger(), opts...)
}

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Timestamp  string            `json:"timestamp"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

func do(t *testing.T, srv *Server, method, path, body string, wantStatus int) envelope {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s: status=%d, want %d, body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}
	return env
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	return do(t, srv, "GET", path, "", http.StatusOK)
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data=%s)", err, env.Data)
	}
}

func TestDiscovery(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if !strings.HasPrefix(env.RequestID, "req_") {
		t.Errorf("request_id = %q, want req_ prefix", env.RequestID)
	}

	var data struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	decodeData(t, env, &data)
	if data.Name != "optrack API" {
		t.Errorf("name = %q, want optrack API", data.Name)
	}
	if len(data.Endpoints) < 15 {
		t.Errorf("endpoints count = %d, want >= 15", len(data.Endpoints))
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/health")

	var data healthResponse
	decodeData(t, env, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != Version {
		t.Errorf("version = %q, want %s", data.Version, Version)
	}
	if data.Directory != "disabled" || data.Reminders != "on_request" {
		t.Errorf("directory = %q, reminders = %q", data.Directory, data.Reminders)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "req_cli00001")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req_cli00001" {
		t.Errorf("X-Request-ID = %q, want req_cli00001", got)
	}

	req = httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "anything")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "anything" || !strings.HasPrefix(got, "req_") {
		t.Errorf("X-Request-ID = %q, want a generated id", got)
	}
}

func TestListSubmissions(t *testing.T) {
	srv := testServer(t)

	env := doGet(t, srv, "/api/v1/submissions?limit=5")
	var subs []model.Submission
	decodeData(t, env, &subs)
	if len(subs) != 5 || subs[0].ID != "SUB-001" {
		t.Fatalf("got %d rows, first %q", len(subs), subs[0].ID)
	}
	if env.Pagination == nil || env.Pagination.Total != 20 || !env.Pagination.HasMore {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	env = doGet(t, srv, "/api/v1/submissions?status=approved&col.operator=AVAMERE+FAMILY&sort=due_date&dir=desc")
	subs = nil
	decodeData(t, env, &subs)
	var ids []string
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	if got, want := strings.Join(ids, ","), "SUB-014,SUB-016,SUB-015,SUB-018,SUB-017"; got != want {
		t.Errorf("ids = %s, want %s", got, want)
	}

	env = doGet(t, srv, "/api/v1/submissions?q=advanced")
	if env.Pagination.Total != 6 {
		t.Errorf("search total = %d, want 6", env.Pagination.Total)
	}
}

func TestListSubmissions_InvalidParams(t *testing.T) {
	srv := testServer(t)
	env := do(t, srv, "GET", "/api/v1/submissions?status=done&sort=nope&date_range=someday&limit=x", "", http.StatusBadRequest)
	if env.Status != "error" || env.Error.Code != model.ErrValidation {
		t.Fatalf("error = %+v", env.Error)
	}
	fields := map[string]bool{}
	for _, d := range env.Error.Details {
		fields[d.Field] = true
	}
	for _, f := range []string{"status", "sort", "date_range"} {
		if !fields[f] {
			t.Errorf("missing detail for %s in %+v", f, env.Error.Details)
		}
	}

	do(t, srv, "GET", "/api/v1/submissions?limit=x", "", http.StatusBadRequest)
	do(t, srv, "GET", "/api/v1/submissions?dataset=deleted", "", http.StatusBadRequest)
}

func TestGetSubmission(t *testing.T) {
	srv := testServer(t)

	env := doGet(t, srv, "/api/v1/submissions/SUB-004")
	var sub model.Submission
	decodeData(t, env, &sub)
	if sub.Operator != "ADVANCED RECOVERY SYSTEMS" || sub.DaysOverdue != 11 {
		t.Errorf("sub = %s days_overdue=%d", sub.Operator, sub.DaysOverdue)
	}

	env = do(t, srv, "GET", "/api/v1/submissions/SUB-999", "", http.StatusNotFound)
	if env.Error.Code != model.ErrNotFound {
		t.Errorf("code = %s, want NOT_FOUND", env.Error.Code)
	}
}

func TestUpdateStatusThenComment(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "PUT", "/api/v1/submissions/SUB-002/status", `{"status":"approved","reason":"docs verified"}`, http.StatusOK)
	var sub model.Submission
	decodeData(t, env, &sub)
	if sub.Status != model.StatusApproved || sub.CommentsText() != "Status changed to approved: docs verified" {
		t.Errorf("after status: %s %q", sub.Status, sub.CommentsText())
	}

	env = do(t, srv, "POST", "/api/v1/submissions/SUB-002/comments", `{"text":"looks good","type":"feedback"}`, http.StatusCreated)
	sub = model.Submission{}
	decodeData(t, env, &sub)
	if want := "Status changed to approved: docs verified\n\n[feedback] looks good"; sub.CommentsText() != want {
		t.Errorf("comments = %q, want %q", sub.CommentsText(), want)
	}

	env = doGet(t, srv, "/api/v1/activity?limit=2")
	var items []model.ActivityItem
	decodeData(t, env, &items)
	if len(items) != 2 || items[0].Type != model.ActivityComment || items[1].Type != model.ActivityApproval {
		t.Errorf("activity = %+v", items)
	}
}

func TestMutationErrors(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   model.ErrorCode
	}{
		{"blank reason", "PUT", "/api/v1/submissions/SUB-002/status", `{"status":"approved","reason":" "}`, http.StatusBadRequest, model.ErrValidation},
		{"unknown status", "PUT", "/api/v1/submissions/SUB-002/status", `{"status":"done","reason":"x"}`, http.StatusBadRequest, model.ErrValidation},
		{"bad json", "PUT", "/api/v1/submissions/SUB-002/status", `not json`, http.StatusBadRequest, model.ErrValidation},
		{"status not found", "PUT", "/api/v1/submissions/SUB-999/status", `{"status":"approved","reason":"x"}`, http.StatusNotFound, model.ErrNotFound},
		{"empty comment", "POST", "/api/v1/submissions/SUB-002/comments", `{"text":""}`, http.StatusBadRequest, model.ErrValidation},
		{"system comment type", "POST", "/api/v1/submissions/SUB-002/comments", `{"text":"x","type":"status-change"}`, http.StatusBadRequest, model.ErrValidation},
		{"archived", "POST", "/api/v1/submissions/arch-1/comments", `{"text":"x"}`, http.StatusConflict, model.ErrConflict},
		{"archived edit", "PATCH", "/api/v1/submissions/arch-1", `{"operator":"x"}`, http.StatusConflict, model.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, srv, tt.method, tt.path, tt.body, tt.status)
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}

func TestPatchSubmission(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "PATCH", "/api/v1/submissions/SUB-005", `{"received_date":"06/20/2024","reviewer_approver":"Kara"}`, http.StatusOK)
	var sub model.Submission
	decodeData(t, env, &sub)
	if sub.ReceivedDate != "06/20/2024" || sub.ReviewerApprover != "Kara" {
		t.Errorf("edited fields = %q, %q", sub.ReceivedDate, sub.ReviewerApprover)
	}
	if sub.Operator != "ADVANCED RECOVERY SYSTEMS" || sub.Status != model.StatusInReview {
		t.Errorf("untouched fields changed: %q %s", sub.Operator, sub.Status)
	}

	env = do(t, srv, "PATCH", "/api/v1/submissions/SUB-005", `{"operator":""}`, http.StatusBadRequest)
	if env.Error.Details[0].Field != "operator" {
		t.Errorf("details = %+v", env.Error.Details)
	}
}

func TestCreateEntry(t *testing.T) {
	srv := testServer(t)
	body := `{"operator":"AVAMERE FAMILY","lease":"Avamere Master Lease","properties":["All","Hillside"],
		"tasks":[{"report_type":"Operating & Capital Budgets","due_date":"2025-03-31"},{"report_type":"Operating Licenses"}]}`
	env := do(t, srv, "POST", "/api/v1/submissions", body, http.StatusCreated)

	var created []model.Submission
	decodeData(t, env, &created)
	if len(created) != 2 {
		t.Fatalf("created %d, want 2", len(created))
	}
	if created[0].ID != "SUB-021" || created[0].DueDate != "03/31/2025" || created[0].Period != "2025" || created[0].Properties != "All" {
		t.Errorf("first = %+v", created[0])
	}
	if created[1].ID != "SUB-022" || created[1].Status != model.StatusSubmitted || created[1].DueDate != "" {
		t.Errorf("second = %+v", created[1])
	}

	env = do(t, srv, "POST", "/api/v1/submissions", `{"operator":"X","lease":"Y","tasks":[]}`, http.StatusBadRequest)
	if env.Error.Code != model.ErrValidation {
		t.Errorf("code = %s", env.Error.Code)
	}
}

func TestFutureTasks(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "POST", "/api/v1/submissions/SUB-005/future-tasks", `{"task":"Chase license","assignee":"Yvonne","due_date":"2025-01-15"}`, http.StatusCreated)
	var task model.FutureTask
	decodeData(t, env, &task)
	if task.Priority != model.PriorityMedium || task.Status != model.TaskStatusPending {
		t.Errorf("task = %+v", task)
	}

	env = doGet(t, srv, "/api/v1/submissions/SUB-005/future-tasks")
	var tasks []model.FutureTask
	decodeData(t, env, &tasks)
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("tasks = %+v", tasks)
	}

	do(t, srv, "DELETE", "/api/v1/future-tasks/"+task.ID, "", http.StatusOK)
	do(t, srv, "DELETE", "/api/v1/future-tasks/"+task.ID, "", http.StatusNotFound)
	do(t, srv, "GET", "/api/v1/submissions/SUB-999/future-tasks", "", http.StatusNotFound)
}

func TestDashboard(t *testing.T) {
	srv := testServer(t)

	env := doGet(t, srv, "/api/v1/dashboard?status=pending&collapsed=ANDREW+RESIDENCE")
	var dash tracker.Dashboard
	decodeData(t, env, &dash)
	if dash.Stats.Total != 20 || dash.Stats.Approved != 14 || dash.Stats.Pending != 2 || dash.Stats.Operators != 4 {
		t.Errorf("stats = %+v", dash.Stats)
	}
	if len(dash.Table.Rows) != 2 || len(dash.Table.Groups) != 2 {
		t.Fatalf("rows = %d groups = %d", len(dash.Table.Rows), len(dash.Table.Groups))
	}
	if dash.Table.Groups[0].Operator != "ADVANCED RECOVERY SYSTEMS" || !dash.Table.Groups[0].Expanded {
		t.Errorf("group 0 = %+v", dash.Table.Groups[0])
	}
	if dash.Table.Groups[1].Operator != "ANDREW RESIDENCE" || dash.Table.Groups[1].Expanded {
		t.Errorf("group 1 = %+v", dash.Table.Groups[1])
	}
	if len(dash.ReportTypes) == 0 {
		t.Error("no report type options")
	}
}

func TestStats(t *testing.T) {
	srv := testServer(t)

	var st struct {
		Total    int `json:"total"`
		Approved int `json:"approved"`
	}
	decodeData(t, doGet(t, srv, "/api/v1/stats?status=pending&report_type=operating-capital-budgets"), &st)
	if st.Total != 12 || st.Approved != 11 {
		t.Errorf("stats = %+v", st)
	}

	st.Total, st.Approved = 0, 0
	decodeData(t, doGet(t, srv, "/api/v1/archived/stats"), &st)
	if st.Total != 2 || st.Approved != 2 {
		t.Errorf("archived stats = %+v", st)
	}

	env := doGet(t, srv, "/api/v1/archived")
	if env.Pagination.Total != 2 {
		t.Errorf("archived total = %d", env.Pagination.Total)
	}
}

func TestColumnValues(t *testing.T) {
	srv := testServer(t)

	var data struct {
		Column string   `json:"column"`
		Values []string `json:"values"`
	}
	decodeData(t, doGet(t, srv, "/api/v1/columns/operator"), &data)
	want := []string{"ADVANCED RECOVERY SYSTEMS", "AGEWELL SOLVERE", "ANDREW RESIDENCE", "AVAMERE FAMILY"}
	if strings.Join(data.Values, "|") != strings.Join(want, "|") {
		t.Errorf("values = %v, want %v", data.Values, want)
	}

	do(t, srv, "GET", "/api/v1/columns/comments", "", http.StatusBadRequest)
}

func TestExport(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest("GET", "/api/v1/export.xlsx?status=in-review", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="optrack-live-20241210.xlsx"` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(w.Body)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1][0] != "SUB-005" || rows[2][0] != "SUB-006" {
		t.Errorf("rows = %v", rows)
	}
}

func TestReminders(t *testing.T) {
	srv := testServer(t)

	var all []model.Reminder
	decodeData(t, doGet(t, srv, "/api/v1/reminders"), &all)
	if len(all) != 1 || all[0].DueDate != "2024-12-31" {
		t.Fatalf("reminders = %+v", all)
	}

	var active activeReminders
	decodeData(t, doGet(t, srv, "/api/v1/reminders/active"), &active)
	if len(active.Reminders) != 0 {
		t.Errorf("active at %s = %+v, want none", fixedNow, active.Reminders)
	}

	// A week before the due date, served from the published feed.
	late := time.Date(2024, time.December, 26, 9, 0, 0, 0, time.UTC)
	svc := testTracker(t, late)
	feed := jobs.NewFeed()
	if err := jobs.NewReminderJob(svc, feed, testLogger()).Run(context.Background()); err != nil {
		t.Fatalf("reminder job: %v", err)
	}
	srv = New(config.DefaultServerConfig(), svc, testLogger(), WithReminderFeed(feed))
	active = activeReminders{}
	decodeData(t, doGet(t, srv, "/api/v1/reminders/active"), &active)
	if len(active.Reminders) != 1 || !active.CheckedAt.Equal(late) {
		t.Errorf("active = %+v", active)
	}

	do(t, srv, "GET", "/api/v1/activity?limit=0", "", http.StatusBadRequest)
}

func TestDirectoryRefresh(t *testing.T) {
	srv := testServer(t)
	env := do(t, srv, "POST", "/api/v1/admin/directory-refresh", "", http.StatusNotImplemented)
	if env.Error == nil {
		t.Error("expected error envelope")
	}

	svc := testTracker(t, fixedNow)
	dir, err := seed.LoadDirectory()
	if err != nil {
		t.Fatal(err)
	}
	srv = New(config.DefaultServerConfig(), svc, testLogger(), WithDirectoryJob(jobs.NewDirectoryJob(svc, dir, testLogger())))

	var res struct {
		Updated int `json:"updated"`
	}
	decodeData(t, do(t, srv, "POST", "/api/v1/admin/directory-refresh", "", http.StatusOK), &res)
	if res.Updated == 0 {
		t.Error("first refresh updated nothing")
	}

	var sub model.Submission
	decodeData(t, doGet(t, srv, "/api/v1/submissions/SUB-001"), &sub)
	if sub.AssetManager != "Melissa Johnson" {
		t.Errorf("asset_manager = %q", sub.AssetManager)
	}

	res.Updated = -1
	decodeData(t, do(t, srv, "POST", "/api/v1/admin/directory-refresh", "", http.StatusOK), &res)
	if res.Updated != 0 {
		t.Errorf("second refresh updated %d, want 0", res.Updated)
	}
}
