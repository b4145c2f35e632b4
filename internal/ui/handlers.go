package ui

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/internal/tracker"
	"github.com/me/optrack/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	tracker *tracker.Service
	feed    *jobs.Feed
	logger  *slog.Logger
}

// Config holds UI configuration.
type Config struct {
	Feed *jobs.Feed // reminder banner source; reminders are checked per request when nil
}

// New creates a new UI handler.
func New(svc *tracker.Service, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		tracker: svc,
		feed:    cfg.Feed,
		logger:  logger.With("component", "ui"),
	}
}

// HandleDashboard renders the live dashboard.
func (ui *UI) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ui.dashboard(w, r, model.DatasetLive)
}

// HandleArchived renders the read-only archived dashboard.
func (ui *UI) HandleArchived(w http.ResponseWriter, r *http.Request) {
	ui.dashboard(w, r, model.DatasetArchived)
}

func (ui *UI) dashboard(w http.ResponseWriter, r *http.Request, dataset model.Dataset) {
	base := "/"
	title := "Dashboard - optrack"
	if dataset == model.DatasetArchived {
		base = "/archived"
		title = "Archived - optrack"
	}

	// Bad parameters fall back to the unfiltered view and are listed inline.
	status := http.StatusOK
	var problems []model.FieldError
	view, err := query.ParseView(r.URL.Query())
	if err != nil {
		problems = model.AsAPIError(err).Details
		view = query.View{}
		status = http.StatusBadRequest
	}

	dash, err := ui.tracker.Dashboard(r.Context(), dataset, view)
	if err != nil {
		ui.renderError(w, r, "Failed to load dashboard", err)
		return
	}
	filters, err := ui.columnFilters(r, dataset, view)
	if err != nil {
		ui.renderError(w, r, "Failed to load column filters", err)
		return
	}

	exportQuery := view.Values()
	if dataset == model.DatasetArchived {
		exportQuery.Set("dataset", string(dataset))
	}

	data := ui.page(r, title)
	data["Dataset"] = dataset
	data["ReadOnly"] = dataset == model.DatasetArchived
	data["Base"] = base
	data["View"] = view
	data["Problems"] = problems
	data["Stats"] = dash.Stats
	data["StatCards"] = statCards(base, view, dash.Stats)
	data["ReportTypes"] = dash.ReportTypes
	data["DateRanges"] = query.DateRanges()
	data["Headers"] = headers(base, view)
	data["TableColumns"] = tableColumns
	data["ColumnFilters"] = filters
	data["Groups"] = groupViews(base, view, dash.Table.Groups)
	data["RowCount"] = len(dash.Table.Rows)
	data["ColumnCount"] = len(tableColumns) + 1
	data["ExpandAllHref"] = href(base, withGroups(view, view.Groups.ExpandAll()))
	data["CollapseAllHref"] = href(base, withGroups(view, view.Groups.CollapseAll()))
	data["ExportHref"] = "/api/v1/export.xlsx?" + exportQuery.Encode()
	ui.render(w, status, "dashboard", data)
}

// HandleSubmissionDetail renders one submission with its forms.
func (ui *UI) HandleSubmissionDetail(w http.ResponseWriter, r *http.Request) {
	ui.detail(w, r, chi.URLParam(r, "id"), http.StatusOK, "", nil)
}

// detail renders the detail page. When failed names a form, its error is
// shown inline and the posted values refill it.
func (ui *UI) detail(w http.ResponseWriter, r *http.Request, id string, status int, failed string, formErr *model.APIError) {
	sub, err := ui.tracker.Get(r.Context(), id)
	if model.IsCode(err, model.ErrNotFound) {
		ui.renderNotFound(w, r, "Submission not found")
		return
	}
	if err != nil {
		ui.renderError(w, r, "Failed to load submission", err)
		return
	}
	tasks, err := ui.tracker.FutureTasks(r.Context(), id)
	if err != nil {
		ui.renderError(w, r, "Failed to load future tasks", err)
		return
	}

	edit := tracker.EditOf(sub)
	posted := url.Values{}
	if failed != "" {
		posted = r.PostForm
		if failed == formEdit {
			edit = editFromForm(posted, edit)
		}
	}

	back := "/"
	if sub.Dataset == model.DatasetArchived {
		back = "/archived"
	}

	data := ui.page(r, sub.ID+" - optrack")
	data["Sub"] = sub
	data["ReadOnly"] = sub.Dataset == model.DatasetArchived
	data["BackHref"] = back
	data["Tasks"] = tasks
	data["Statuses"] = model.AllStatuses()
	data["CommentTypes"] = model.UserCommentTypes()
	data["Priorities"] = []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	data["Edit"] = edit
	data["EditFields"] = editFields(edit)
	data["Failed"] = failed
	data["FormError"] = formErr
	data["Posted"] = posted
	ui.render(w, status, "submissions/detail", data)
}

// Form names on the detail page.
const (
	formStatus  = "status"
	formComment = "comment"
	formEdit    = "edit"
	formTask    = "task"
)

// HandleStatusPost applies the status form.
func (ui *UI) HandleStatusPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ui.parseForm(w, r) {
		return
	}
	_, err := ui.tracker.UpdateStatus(r.Context(), id, tracker.StatusChange{
		Status: model.Status(r.PostFormValue("status")),
		Reason: r.PostFormValue("reason"),
		Author: r.PostFormValue("author"),
	})
	ui.afterMutation(w, r, id, formStatus, "Status updated", err)
}

// HandleCommentPost applies the comment form.
func (ui *UI) HandleCommentPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ui.parseForm(w, r) {
		return
	}
	_, err := ui.tracker.AddComment(r.Context(), id, tracker.NewComment{
		Text:   r.PostFormValue("text"),
		Type:   model.CommentType(r.PostFormValue("type")),
		Author: r.PostFormValue("author"),
	})
	ui.afterMutation(w, r, id, formComment, "Comment added", err)
}

// HandleEditPost applies the edit form.
func (ui *UI) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ui.parseForm(w, r) {
		return
	}
	if raw := strings.TrimSpace(r.PostFormValue("days_under_status")); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			ui.afterMutation(w, r, id, formEdit, "", model.NewValidationError("invalid submission",
				model.FieldError{Field: "days_under_status", Message: "days_under_status must be a whole number"}))
			return
		}
	}
	current, err := ui.tracker.Get(r.Context(), id)
	if err != nil {
		ui.afterMutation(w, r, id, formEdit, "", err)
		return
	}
	_, err = ui.tracker.UpdateSubmission(r.Context(), id, editFromForm(r.PostForm, tracker.EditOf(current)))
	ui.afterMutation(w, r, id, formEdit, "Submission saved", err)
}

// HandleFutureTaskPost applies the future-task form.
func (ui *UI) HandleFutureTaskPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ui.parseForm(w, r) {
		return
	}
	_, err := ui.tracker.AddFutureTask(r.Context(), id, tracker.NewFutureTask{
		Task:     r.PostFormValue("task"),
		Assignee: r.PostFormValue("assignee"),
		DueDate:  r.PostFormValue("due_date"),
		Priority: model.Priority(r.PostFormValue("priority")),
	})
	ui.afterMutation(w, r, id, formTask, "Future task scheduled", err)
}

// HandleFutureTaskDelete removes a future task and returns to its submission.
func (ui *UI) HandleFutureTaskDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := ui.tracker.RemoveFutureTask(r.Context(), chi.URLParam(r, "tid"))
	ui.afterMutation(w, r, id, formTask, "Future task removed", err)
}

// afterMutation redirects to the detail page on success (POST-redirect-GET)
// or re-renders it with the error beside the failed form.
func (ui *UI) afterMutation(w http.ResponseWriter, r *http.Request, id, form, notice string, err error) {
	if err == nil {
		target := "/submissions/" + url.PathEscape(id) + "?notice=" + url.QueryEscape(notice)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	apiErr := model.AsAPIError(err)
	switch apiErr.Code {
	case model.ErrValidation:
		ui.detail(w, r, id, http.StatusBadRequest, form, apiErr)
	case model.ErrConflict:
		ui.detail(w, r, id, http.StatusConflict, form, apiErr)
	case model.ErrNotFound:
		ui.renderNotFound(w, r, apiErr.Message)
	default:
		ui.renderError(w, r, "Update failed", err)
	}
}

// HandleEntryForm renders the new-entry form.
func (ui *UI) HandleEntryForm(w http.ResponseWriter, r *http.Request) {
	ui.entryForm(w, r, http.StatusOK, url.Values{}, nil)
}

func (ui *UI) entryForm(w http.ResponseWriter, r *http.Request, status int, posted url.Values, formErr *model.APIError) {
	data := ui.page(r, "New Entry - optrack")
	data["Catalog"] = ui.tracker.Catalog()
	data["Tasks"] = entryTaskViews(ui.tracker.Catalog(), posted)
	data["Posted"] = posted
	data["FormError"] = formErr
	ui.render(w, status, "entries/new", data)
}

// HandleEntryPost creates the submissions of a new entry.
func (ui *UI) HandleEntryPost(w http.ResponseWriter, r *http.Request) {
	if !ui.parseForm(w, r) {
		return
	}
	created, err := ui.tracker.CreateEntry(r.Context(), entryFromForm(r.PostForm, ui.tracker.Catalog()))
	if err != nil {
		apiErr := model.AsAPIError(err)
		if apiErr.Code != model.ErrValidation {
			ui.renderError(w, r, "Failed to create entry", err)
			return
		}
		ui.entryForm(w, r, http.StatusBadRequest, r.PostForm, apiErr)
		return
	}
	notice := fmt.Sprintf("Created %d submission(s)", len(created))
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func (ui *UI) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		ui.renderStatus(w, r, http.StatusBadRequest, "Invalid form submission")
		return false
	}
	return true
}

// page returns the data every page shares: title, flash notice and the
// reminder banner.
func (ui *UI) page(r *http.Request, title string) map[string]any {
	return map[string]any{
		"Title":     title,
		"Notice":    r.URL.Query().Get("notice"),
		"Reminders": RemindersFromContext(r.Context()),
	}
}

func (ui *UI) render(w http.ResponseWriter, status int, template string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, r *http.Request, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.renderStatus(w, r, http.StatusInternalServerError, message)
}

func (ui *UI) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	ui.renderStatus(w, r, http.StatusNotFound, message)
}

func (ui *UI) renderStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := ui.page(r, http.StatusText(status)+" - optrack")
	data["Message"] = message
	ui.render(w, status, "error", data)
}
