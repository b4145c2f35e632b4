package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/me/optrack/internal/config"
	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/internal/server"
	"github.com/me/optrack/internal/store"
	"github.com/me/optrack/internal/tracker"
)

var fixedNow = time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC)

// startTestServer starts a server over a freshly seeded in-memory store and returns the URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srvLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewSQLiteStore(srvLogger)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	if _, err := seed.Load(ctx, st, seed.Options{}, srvLogger); err != nil {
		t.Fatalf("seed test store: %v", err)
	}
	catalog, err := seed.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc := tracker.New(st, catalog, srvLogger).WithClock(func() time.Time { return fixedNow })

	srv := server.New(config.DefaultServerConfig(), svc, srvLogger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("optrack %s: %v\noutput: %s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestListCommand(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "list", "--status", "pending")
	assertContains(t, out, "SUB-004", "SUB-010", "ADVANCED RECOVERY SYSTEMS")
	if strings.Contains(out, "SUB-001 ") {
		t.Errorf("approved SUB-001 listed under --status pending:\n%s", out)
	}

	out = mustRun(t, "--server", url, "list", "--limit", "5")
	assertContains(t, out, "(5 of 20 shown)")
}

func TestListCommand_ColumnFilterAndSort(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "list",
		"--status", "approved", "--col", "operator=AVAMERE FAMILY", "--sort", "due_date", "--dir", "desc")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("want header, rule and 5 rows; got %d lines:\n%s", len(lines), out)
	}
	var got []string
	for _, l := range lines[2:] {
		got = append(got, strings.Fields(l)[0])
	}
	want := "SUB-014 SUB-016 SUB-015 SUB-018 SUB-017"
	if strings.Join(got, " ") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
}

func TestListCommand_Errors(t *testing.T) {
	url := startTestServer(t)

	if _, err := runCLI(t, "--server", url, "list", "--col", "operator"); err == nil || !strings.Contains(err.Error(), "invalid --col") {
		t.Errorf("bad --col: err = %v", err)
	}
	if _, err := runCLI(t, "--server", url, "list", "--status", "bogus"); err == nil || !strings.Contains(err.Error(), "VALIDATION_ERROR") {
		t.Errorf("bad status: err = %v", err)
	}
}

func TestArchivedCommand(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "archived")
	assertContains(t, out, "arch-1", "arch-2")
	if strings.Contains(out, "SUB-001") {
		t.Errorf("live rows in archived listing:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "stats")
	assertContains(t, out, "Total:         20", "Approved:      14", "Pending:       2", "Operators:     4")

	out = mustRun(t, "--server", url, "stats", "--report-type", "operating-capital-budgets")
	assertContains(t, out, "Total:         12", "Approved:      11")

	out = mustRun(t, "--server", url, "stats", "--archived")
	assertContains(t, out, "Total:         2", "Approved:      2")
}

func TestShowCommand(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "show", "SUB-004")
	assertContains(t, out, "Submission: SUB-004", "Status:      Pending", "(11 days overdue)")

	if _, err := runCLI(t, "--server", url, "show", "SUB-999"); err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("show missing: err = %v", err)
	}
}

func TestSetStatusAndComment(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "set-status", "SUB-004", "approved", "--reason", "docs in", "--author", "Melissa")
	assertContains(t, out, "SUB-004 is now Approved")

	out = mustRun(t, "--server", url, "comment", "SUB-004", "--type", "feedback", "thanks", "for", "the", "upload")
	assertContains(t, out, "Comment added to SUB-004")

	out = mustRun(t, "--server", url, "show", "SUB-004")
	assertContains(t, out, "Status changed to approved: docs in", "[feedback] thanks for the upload")

	out = mustRun(t, "--server", url, "activity", "--limit", "1")
	assertContains(t, out, "comment", "Comment added")

	if _, err := runCLI(t, "--server", url, "set-status", "SUB-004", "approved"); err == nil {
		t.Error("set-status without --reason should fail")
	}
	if _, err := runCLI(t, "--server", url, "comment", "arch-1", "late"); err == nil || !strings.Contains(err.Error(), "CONFLICT") {
		t.Errorf("comment on archived: err = %v", err)
	}
}

func TestTasksCommands(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "tasks", "list", "SUB-005")
	assertContains(t, out, "No future tasks.")

	out = mustRun(t, "--server", url, "tasks", "add", "SUB-005",
		"--task", "Chase signed budget", "--assignee", "Yvonne", "--due", "2025-01-15", "--priority", "high")
	assertContains(t, out, "Task scheduled: ")
	taskID := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "Task scheduled: "))

	out = mustRun(t, "--server", url, "tasks", "list", "SUB-005")
	assertContains(t, out, taskID, "Chase signed budget", "high", "pending")

	out = mustRun(t, "--server", url, "tasks", "remove", taskID)
	assertContains(t, out, "removed")
	assertContains(t, mustRun(t, "--server", url, "tasks", "list", "SUB-005"), "No future tasks.")
}

func TestRemindersCommand(t *testing.T) {
	url := startTestServer(t)

	out := mustRun(t, "--server", url, "reminders")
	assertContains(t, out, "2024-12-31", "Yvonne Smith")

	out = mustRun(t, "--server", url, "reminders", "--active")
	assertContains(t, out, "Checked at 2024-12-10T12:00:00Z", "No reminders.")
}

func TestExportCommand(t *testing.T) {
	url := startTestServer(t)
	path := filepath.Join(t.TempDir(), "review.xlsx")

	out := mustRun(t, "--server", url, "export", "--status", "in-review", "-o", path)
	assertContains(t, out, "Wrote "+path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "SUB-005" || rows[2][0] != "SUB-006" {
		t.Errorf("rows = %v", rows)
	}
}

func TestDefaultServer(t *testing.T) {
	t.Setenv("OPTRACK_SERVER", "http://tracker.example:9090")
	if got := defaultServer(); got != "http://tracker.example:9090" {
		t.Errorf("defaultServer() = %q", got)
	}
}
