package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/pkg/model"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
	"displayDate": dates.Display,
	"statusColor": func(s model.Status) string {
		switch s {
		case model.StatusApproved:
			return "bg-green-100 text-green-800"
		case model.StatusPending:
			return "bg-yellow-100 text-yellow-800"
		case model.StatusInReview:
			return "bg-blue-100 text-blue-800"
		case model.StatusSubmitted:
			return "bg-indigo-100 text-indigo-800"
		case model.StatusNonCompliant:
			return "bg-red-100 text-red-800"
		case model.StatusOverdue:
			return "bg-orange-100 text-orange-800"
		default:
			return "bg-gray-100 text-gray-800"
		}
	},
	"cardColor": func(color string) string {
		return "text-" + color + "-600"
	},
	"commentColor": func(t model.CommentType) string {
		switch t {
		case model.CommentFeedback:
			return "border-blue-400"
		case model.CommentCorrection:
			return "border-red-400"
		case model.CommentApproval:
			return "border-green-400"
		case model.CommentFollowUp:
			return "border-yellow-400"
		case model.CommentStatusChange:
			return "border-indigo-400"
		default:
			return "border-gray-300"
		}
	},
	"cell": func(col query.Column, s *model.Submission) string {
		switch col {
		case query.ColStatus:
			return s.Status.Label()
		case query.ColDueDate, query.ColReceivedDate:
			return dates.Display(col.Value(s))
		}
		return col.Value(s)
	},
	"isStatus": func(col query.Column) bool {
		return col == query.ColStatus
	},
	"isComments": func(col query.Column) bool {
		return col == query.ColComments
	},
	"fieldError": func(e *model.APIError, field string) string {
		if e == nil {
			return ""
		}
		for _, d := range e.Details {
			if d.Field == field || strings.HasSuffix(d.Field, "."+field) {
				return d.Message
			}
		}
		return ""
	},
	"selectedIn": func(vals []string, v string) bool {
		for _, x := range vals {
			if x == v {
				return true
			}
		}
		return false
	},
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	_, err = tmpl.New("content").Parse(content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			_, err = tmpl.New(filepath.Base(compName)).Parse(compContent)
			if err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content, keyed by page name.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-full mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">optrack</a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Dashboard</a>
                        <a href="/archived" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">Archived</a>
                        <a href="/entries/new" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">New Entry</a>
                    </div>
                </div>
            </div>
        </div>
    </nav>

    {{range .Reminders}}
    <div class="bg-amber-50 border-b border-amber-200 px-8 py-2 text-sm text-amber-800" role="alert" data-reminder="{{.ID}}">
        <strong>Reminder:</strong> {{.Message}} (due {{.DueDate}}, {{.Recipient}})
    </div>
    {{end}}

    <main class="max-w-full mx-auto py-6 sm:px-6 lg:px-8">
        {{if .Notice}}
        <div class="mb-4 rounded-md bg-green-50 p-4 text-sm text-green-700" role="status">{{.Notice}}</div>
        {{end}}
        {{template "content" .}}
    </main>
</body>
</html>`,

	"components/status_badge": `{{define "status_badge"}}<span class="px-2 inline-flex text-xs leading-5 font-semibold rounded-full {{statusColor .}}">{{.Label}}</span>{{end}}`,

	"components/form_error": `{{define "form_error"}}{{if .}}<div class="mb-3 rounded-md bg-red-50 p-3 text-sm text-red-700" role="alert">
    <p class="font-medium">{{.Message}}</p>
    {{if .Details}}<ul class="mt-1 list-disc list-inside">{{range .Details}}<li>{{if .Field}}{{.Field}}: {{end}}{{.Message}}</li>{{end}}</ul>{{end}}
</div>{{end}}{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-12 text-center">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Title}}</h1>
    <p class="mt-2 text-gray-600">{{.Message}}</p>
    <a href="/" class="mt-6 inline-block text-indigo-600 hover:text-indigo-800">Back to dashboard</a>
</div>
{{end}}`,

	"dashboard": `{{define "content"}}
<div class="px-4 sm:px-0">
    <div class="mb-6 flex items-center justify-between">
        <div>
            <h1 class="text-2xl font-semibold text-gray-900">{{if .ReadOnly}}Archived Submissions{{else}}Operator Workflow Tracking{{end}}</h1>
            {{if .ReadOnly}}<p class="mt-1 text-sm text-gray-500">Archived records are read-only.</p>{{end}}
        </div>
        <a href="{{.ExportHref}}" class="inline-flex items-center px-4 py-2 border border-gray-300 rounded-md text-sm font-medium text-gray-700 bg-white hover:bg-gray-50">Export XLSX</a>
    </div>

    {{if .Problems}}
    <div class="mb-4 rounded-md bg-red-50 p-4 text-sm text-red-700" role="alert">
        <p class="font-medium">Some filters were invalid and have been cleared.</p>
        <ul class="mt-1 list-disc list-inside">{{range .Problems}}<li>{{.Field}}: {{.Message}}</li>{{end}}</ul>
    </div>
    {{end}}

    <!-- Stats -->
    <div class="grid grid-cols-2 gap-4 sm:grid-cols-4 lg:grid-cols-8 mb-6">
        {{range .StatCards}}
        <a href="{{.Href}}" class="bg-white shadow rounded-lg p-4 hover:shadow-md {{if .Active}}ring-2 ring-indigo-500{{end}}" data-card="{{.Label}}">
            <div class="text-sm font-medium text-gray-500">{{.Label}}</div>
            <div class="mt-1 text-2xl font-semibold {{cardColor .Color}}">{{.Count}}</div>
        </a>
        {{end}}
    </div>

    <!-- Filters -->
    <form method="GET" action="{{.Base}}" class="bg-white shadow rounded-lg p-4 mb-6">
        {{if .View.Criteria.Status}}<input type="hidden" name="status" value="{{.View.Criteria.Status}}">{{end}}
        {{if .View.Sort.Key}}
        <input type="hidden" name="sort" value="{{.View.Sort.Key}}">
        <input type="hidden" name="dir" value="{{.View.Sort.Direction}}">
        {{end}}
        <div class="grid grid-cols-1 gap-4 sm:grid-cols-3">
            <input type="search" name="q" value="{{.View.Criteria.Search}}" placeholder="Search submissions"
                   class="block w-full rounded-md border-gray-300 shadow-sm sm:text-sm px-3 py-2 border">
            <select name="report_type" class="block w-full rounded-md border-gray-300 sm:text-sm px-3 py-2 border">
                <option value="all">All report types</option>
                {{range .ReportTypes}}<option value="{{.Value}}" {{if eq .Value $.View.Criteria.ReportType}}selected{{end}}>{{.Label}}</option>{{end}}
            </select>
            <select name="date_range" class="block w-full rounded-md border-gray-300 sm:text-sm px-3 py-2 border">
                {{range .DateRanges}}<option value="{{.}}" {{if eq . $.View.Criteria.DateRange}}selected{{end}}>{{.}}</option>{{end}}
            </select>
        </div>
        <div class="mt-4 grid grid-cols-2 gap-3 sm:grid-cols-3 lg:grid-cols-9">
            {{range .ColumnFilters}}
            <label class="text-xs text-gray-500">{{.Label}}
                <select name="{{.Name}}" class="mt-1 block w-full rounded-md border-gray-300 text-sm px-2 py-1 border">
                    <option value="all">All</option>
                    {{$sel := .Selected}}
                    {{range .Options}}<option value="{{.}}" {{if eq . $sel}}selected{{end}}>{{.}}</option>{{end}}
                </select>
            </label>
            {{end}}
        </div>
        <div class="mt-4 flex items-center space-x-4">
            <button type="submit" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Apply</button>
            <a href="{{.Base}}" class="text-sm text-gray-500 hover:text-gray-700">Clear</a>
            <span class="text-sm text-gray-500">{{.RowCount}} of {{.Stats.Total}} shown</span>
            <a href="{{.ExpandAllHref}}" class="text-sm text-indigo-600">Expand all</a>
            <a href="{{.CollapseAllHref}}" class="text-sm text-indigo-600">Collapse all</a>
        </div>
    </form>

    <!-- Table -->
    <div class="bg-white shadow overflow-x-auto rounded-lg">
        <table class="min-w-full divide-y divide-gray-200 text-sm">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-3 py-2 text-left text-xs font-medium text-gray-500 uppercase">ID</th>
                    {{range .Headers}}
                    <th class="px-3 py-2 text-left text-xs font-medium text-gray-500 uppercase whitespace-nowrap">
                        <a href="{{.Href}}" class="hover:text-gray-800">{{.Label}} {{.Arrow}}</a>
                    </th>
                    {{end}}
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Groups}}
                <tr class="bg-gray-100" data-group="{{.Operator}}">
                    <td colspan="{{$.ColumnCount}}" class="px-3 py-2 font-semibold text-gray-800">
                        <a href="{{.ToggleHref}}">{{if .Expanded}}&#9662;{{else}}&#9656;{{end}} {{.Operator}}</a>
                        <span class="ml-2 text-xs font-normal text-gray-500">{{.Count}} submission(s)</span>
                    </td>
                </tr>
                {{if .Expanded}}
                {{range .Submissions}}
                {{$sub := .}}
                <tr class="hover:bg-gray-50 align-top" data-row="{{.ID}}">
                    <td class="px-3 py-2 whitespace-nowrap"><a href="/submissions/{{.ID}}" class="text-indigo-600 hover:text-indigo-900">{{.ID}}</a></td>
                    {{range $.TableColumns}}
                    <td class="px-3 py-2 {{if isComments .}}whitespace-pre-line max-w-md{{else}}whitespace-nowrap{{end}}">
                        {{if isStatus .}}{{template "status_badge" $sub.Status}}{{else}}{{cell . $sub}}{{end}}
                    </td>
                    {{end}}
                </tr>
                {{end}}
                {{end}}
                {{else}}
                <tr><td colspan="{{$.ColumnCount}}" class="px-6 py-8 text-center text-gray-500">No submissions match the current filters</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"submissions/detail": `{{define "content"}}
<div class="px-4 sm:px-0">
    <a href="{{.BackHref}}" class="text-sm text-indigo-600 hover:text-indigo-800">&larr; Back</a>
    <div class="mt-2 mb-6 flex items-center space-x-3">
        <h1 class="text-2xl font-semibold text-gray-900">{{.Sub.ID}} {{.Sub.Operator}}</h1>
        {{template "status_badge" .Sub.Status}}
        {{if .ReadOnly}}<span class="text-xs text-gray-500">archived, read-only</span>{{end}}
    </div>
    {{if and .ReadOnly .FormError}}{{template "form_error" .FormError}}{{end}}

    <div class="grid grid-cols-1 gap-6 lg:grid-cols-3">
        <div class="lg:col-span-2 space-y-6">
            <div class="bg-white shadow rounded-lg p-6">
                <h2 class="text-lg font-medium text-gray-900 mb-4">Details</h2>
                <dl class="grid grid-cols-2 gap-x-4 gap-y-3 text-sm">
                    <div><dt class="text-gray-500">Report Type</dt><dd>{{.Sub.ReportType}}</dd></div>
                    <div><dt class="text-gray-500">Report Party</dt><dd>{{.Sub.ReportParty}}</dd></div>
                    <div><dt class="text-gray-500">Frequency</dt><dd>{{.Sub.Frequency}}</dd></div>
                    <div><dt class="text-gray-500">Period</dt><dd>{{.Sub.Period}}</dd></div>
                    <div><dt class="text-gray-500">Lease</dt><dd>{{.Sub.LeaseName}}</dd></div>
                    <div><dt class="text-gray-500">Properties</dt><dd>{{.Sub.Properties}}</dd></div>
                    <div><dt class="text-gray-500">Due Date</dt><dd>{{displayDate .Sub.DueDate}}{{if .Sub.DaysOverdue}} <span class="text-red-600">({{.Sub.DaysOverdue}} days overdue)</span>{{end}}</dd></div>
                    <div><dt class="text-gray-500">Received Date</dt><dd>{{displayDate .Sub.ReceivedDate}}</dd></div>
                    <div><dt class="text-gray-500">Reviewer/Approver</dt><dd>{{.Sub.ReviewerApprover}}</dd></div>
                    <div><dt class="text-gray-500">Days Under Status</dt><dd>{{.Sub.DaysUnderStatus}}</dd></div>
                    <div><dt class="text-gray-500">Asset Manager</dt><dd>{{.Sub.AssetManager}}</dd></div>
                    <div><dt class="text-gray-500">Inv Manager</dt><dd>{{.Sub.InvManager}}</dd></div>
                    <div><dt class="text-gray-500">Lease Admin</dt><dd>{{.Sub.LeaseAdmin}}</dd></div>
                    <div><dt class="text-gray-500">Inv Associate</dt><dd>{{.Sub.InvAssociate}}</dd></div>
                </dl>
            </div>

            <div class="bg-white shadow rounded-lg p-6">
                <h2 class="text-lg font-medium text-gray-900 mb-4">Comments</h2>
                {{range .Sub.Comments}}
                <div class="border-l-4 {{commentColor .Type}} pl-3 mb-3" data-comment="{{.ID}}">
                    <p class="text-sm text-gray-800 whitespace-pre-line">{{.Line}}</p>
                    <p class="text-xs text-gray-500">{{.Author}} {{formatTime .CreatedAt}}</p>
                </div>
                {{else}}
                <p class="text-sm text-gray-500">No comments yet</p>
                {{end}}

                {{if not .ReadOnly}}
                <form method="POST" action="/submissions/{{.Sub.ID}}/comments" class="mt-4 space-y-2" id="comment-form">
                    {{if eq .Failed "comment"}}{{template "form_error" .FormError}}{{end}}
                    <select name="type" class="rounded-md border px-2 py-1 text-sm">
                        {{range .CommentTypes}}<option value="{{.}}" {{if eq (print .) ($.Posted.Get "type")}}selected{{end}}>{{.}}</option>{{end}}
                    </select>
                    <textarea name="text" rows="3" class="block w-full rounded-md border px-3 py-2 text-sm" placeholder="Add a comment">{{if eq .Failed "comment"}}{{.Posted.Get "text"}}{{end}}</textarea>
                    <button type="submit" class="px-3 py-1.5 rounded-md text-sm text-white bg-indigo-600 hover:bg-indigo-700">Add comment</button>
                </form>
                {{end}}
            </div>

            <div class="bg-white shadow rounded-lg p-6">
                <h2 class="text-lg font-medium text-gray-900 mb-4">Future Tasks</h2>
                <ul class="divide-y divide-gray-200">
                    {{range .Tasks}}
                    <li class="py-2 flex items-center justify-between text-sm" data-task="{{.ID}}">
                        <span>{{.Task}} <span class="text-gray-500">{{.Assignee}}, due {{.DueDate}}, {{.Priority}} priority, {{.Status}}</span></span>
                        {{if not $.ReadOnly}}
                        <form method="POST" action="/submissions/{{$.Sub.ID}}/future-tasks/{{.ID}}/delete">
                            <button type="submit" class="text-red-600 hover:text-red-800 text-xs">Remove</button>
                        </form>
                        {{end}}
                    </li>
                    {{else}}
                    <li class="py-2 text-sm text-gray-500">No future tasks</li>
                    {{end}}
                </ul>
                {{if not .ReadOnly}}
                <form method="POST" action="/submissions/{{.Sub.ID}}/future-tasks" class="mt-4 grid grid-cols-2 gap-2 text-sm" id="task-form">
                    {{if eq .Failed "task"}}<div class="col-span-2">{{template "form_error" .FormError}}</div>{{end}}
                    <input name="task" placeholder="Task" value="{{if eq .Failed "task"}}{{.Posted.Get "task"}}{{end}}" class="rounded-md border px-2 py-1">
                    <input name="assignee" placeholder="Assignee" value="{{if eq .Failed "task"}}{{.Posted.Get "assignee"}}{{end}}" class="rounded-md border px-2 py-1">
                    <input name="due_date" type="date" value="{{if eq .Failed "task"}}{{.Posted.Get "due_date"}}{{end}}" class="rounded-md border px-2 py-1">
                    <select name="priority" class="rounded-md border px-2 py-1">
                        {{range .Priorities}}<option value="{{.}}" {{if eq (print .) "medium"}}selected{{end}}>{{.}}</option>{{end}}
                    </select>
                    <button type="submit" class="col-span-2 px-3 py-1.5 rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Schedule task</button>
                </form>
                {{end}}
            </div>
        </div>

        {{if not .ReadOnly}}
        <div class="space-y-6">
            <div class="bg-white shadow rounded-lg p-6">
                <h2 class="text-lg font-medium text-gray-900 mb-4">Change Status</h2>
                <form method="POST" action="/submissions/{{.Sub.ID}}/status" class="space-y-2 text-sm" id="status-form">
                    {{if eq .Failed "status"}}{{template "form_error" .FormError}}{{end}}
                    <select name="status" class="block w-full rounded-md border px-2 py-1">
                        {{range .Statuses}}<option value="{{.}}" {{if eq . $.Sub.Status}}selected{{end}}>{{.Label}}</option>{{end}}
                    </select>
                    <textarea name="reason" rows="3" class="block w-full rounded-md border px-3 py-2" placeholder="Reason for the change">{{if eq .Failed "status"}}{{.Posted.Get "reason"}}{{end}}</textarea>
                    {{with fieldError .FormError "reason"}}{{if eq $.Failed "status"}}<p class="text-xs text-red-600">{{.}}</p>{{end}}{{end}}
                    <button type="submit" class="w-full px-3 py-1.5 rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Update status</button>
                </form>
            </div>

            <div class="bg-white shadow rounded-lg p-6">
                <h2 class="text-lg font-medium text-gray-900 mb-4">Edit Submission</h2>
                <form method="POST" action="/submissions/{{.Sub.ID}}/edit" class="space-y-2 text-sm" id="edit-form">
                    {{if eq .Failed "edit"}}{{template "form_error" .FormError}}{{end}}
                    {{range .EditFields}}
                    <label class="block text-xs text-gray-500">{{.Label}}
                        <input name="{{.Name}}" value="{{.Value}}" class="mt-1 block w-full rounded-md border px-2 py-1 text-sm text-gray-900">
                        {{if eq $.Failed "edit"}}{{with fieldError $.FormError .Name}}<span class="text-red-600">{{.}}</span>{{end}}{{end}}
                    </label>
                    {{end}}
                    <label class="block text-xs text-gray-500">Status
                        <select name="status" class="mt-1 block w-full rounded-md border px-2 py-1 text-sm text-gray-900">
                            {{range .Statuses}}<option value="{{.}}" {{if eq . $.Edit.Status}}selected{{end}}>{{.Label}}</option>{{end}}
                        </select>
                    </label>
                    <button type="submit" class="w-full px-3 py-1.5 rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Save</button>
                </form>
            </div>
        </div>
        {{end}}
    </div>
</div>
{{end}}`,

	"entries/new": `{{define "content"}}
<div class="px-4 sm:px-0 max-w-4xl">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">New Entry</h1>
    <form method="POST" action="/entries" class="bg-white shadow rounded-lg p-6 space-y-4 text-sm" id="entry-form">
        {{template "form_error" .FormError}}
        <label class="block">Operator
            <input name="operator" list="operators" value="{{.Posted.Get "operator"}}" class="mt-1 block w-full rounded-md border px-3 py-2">
            <datalist id="operators">{{range .Catalog.Operators}}<option value="{{.}}">{{end}}</datalist>
        </label>
        <label class="block">Lease
            <input name="lease" value="{{.Posted.Get "lease"}}" class="mt-1 block w-full rounded-md border px-3 py-2">
        </label>
        <label class="block">Properties
            <select name="properties" multiple class="mt-1 block w-full rounded-md border px-3 py-2">
                {{range .Catalog.Properties}}<option value="{{.}}" {{if selectedIn (index $.Posted "properties") .}}selected{{end}}>{{.}}</option>{{end}}
            </select>
        </label>
        <label class="block">Notes
            <textarea name="notes" rows="2" class="mt-1 block w-full rounded-md border px-3 py-2">{{.Posted.Get "notes"}}</textarea>
        </label>

        <fieldset>
            <legend class="font-medium text-gray-900 mb-2">Report types</legend>
            <table class="min-w-full text-sm">
                <thead><tr class="text-left text-xs text-gray-500 uppercase">
                    <th class="py-1"></th><th>Report Type</th><th>Report Party</th><th>Frequency</th><th>Due Date</th><th>Notes</th>
                </tr></thead>
                <tbody>
                {{range .Tasks}}
                {{$t := .}}
                <tr data-report-type="{{.Type.Name}}">
                    <td class="py-1 pr-2"><input type="checkbox" name="task.{{.Index}}.selected" value="on" {{if .Selected}}checked{{end}}></td>
                    <td class="pr-2">{{.Type.Name}}</td>
                    <td class="pr-2"><select name="task.{{.Index}}.report_party" class="rounded-md border px-1 py-0.5">
                        {{range .Type.ReportParties}}<option value="{{.}}" {{if eq . $t.Party}}selected{{end}}>{{.}}</option>{{end}}
                    </select></td>
                    <td class="pr-2"><select name="task.{{.Index}}.frequency" class="rounded-md border px-1 py-0.5">
                        {{range .Type.Frequencies}}<option value="{{.}}" {{if or (eq . $t.Freq) (and (not $t.Freq) (eq . $t.Type.DefaultFrequency))}}selected{{end}}>{{.}}</option>{{end}}
                    </select></td>
                    <td class="pr-2"><input type="date" name="task.{{.Index}}.due_date" value="{{.DueDate}}" class="rounded-md border px-1 py-0.5"></td>
                    <td><input name="task.{{.Index}}.notes" value="{{.Notes}}" class="rounded-md border px-1 py-0.5"></td>
                </tr>
                {{end}}
                </tbody>
            </table>
        </fieldset>

        <button type="submit" class="px-4 py-2 rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Create submissions</button>
    </form>
</div>
{{end}}`,
}
