package tracker

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/pkg/model"
)

// Defaults applied to every submission created from a new entry.
const (
	EntryCategory = "Budgets"
	EntryReviewer = "Pending Assignment"
	EntryAssignee = "TBD"
	AllProperties = "All"
)

// EntryTask is one report type selected on the new-entry form.
type EntryTask struct {
	ReportType  string `json:"report_type" validate:"required"`
	ReportParty string `json:"report_party,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	DueDate     string `json:"due_date,omitempty" validate:"omitempty,date"`
	Notes       string `json:"notes,omitempty"`
}

// NewEntry creates one submission per task for an operator and lease.
type NewEntry struct {
	Operator   string      `json:"operator" validate:"required"`
	Lease      string      `json:"lease" validate:"required"`
	Properties []string    `json:"properties,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Tasks      []EntryTask `json:"tasks" validate:"required,min=1,dive"`
	Author     string      `json:"author,omitempty"`
}

// JoinProperties renders the property selection. "All" excludes every other choice.
func JoinProperties(props []string) string {
	var out []string
	for _, p := range props {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		if p == AllProperties {
			return AllProperties
		}
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// CreateEntry validates the whole entry, then creates one submission per task,
// in task order, within a single store transaction. A failure stores none of
// them.
func (s *Service) CreateEntry(ctx context.Context, entry NewEntry) ([]*model.Submission, error) {
	entry.Operator = strings.TrimSpace(entry.Operator)
	entry.Lease = strings.TrimSpace(entry.Lease)
	for i := range entry.Tasks {
		t := &entry.Tasks[i]
		t.ReportType = strings.TrimSpace(t.ReportType)
		t.DueDate = strings.TrimSpace(t.DueDate)
	}
	if err := s.check(entry); err != nil {
		return nil, err
	}
	if err := s.resolveTasks(entry.Tasks); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	who := author(entry.Author)
	props := JoinProperties(entry.Properties)
	ids, err := s.store.NextSubmissionIDs(ctx, len(entry.Tasks))
	if err != nil {
		return nil, fmt.Errorf("next submission ids: %w", err)
	}
	created := make([]*model.Submission, 0, len(entry.Tasks))
	for i, t := range entry.Tasks {
		sub := &model.Submission{
			ID:               ids[i],
			Operator:         entry.Operator,
			Category:         EntryCategory,
			ReportType:       t.ReportType,
			ReportParty:      t.ReportParty,
			Frequency:        t.Frequency,
			LeaseName:        entry.Lease,
			Properties:       props,
			Status:           model.StatusSubmitted,
			ReviewerApprover: EntryReviewer,
			AssetManager:     EntryAssignee,
			InvManager:       EntryAssignee,
			LeaseAdmin:       EntryAssignee,
			InvAssociate:     EntryAssignee,
		}
		if due, ok := dates.Parse(t.DueDate); ok {
			sub.DueDate = dates.FormatUS(due)
			sub.Period = dates.Year(due)
		}
		note := strings.TrimSpace(t.Notes)
		if note == "" {
			note = strings.TrimSpace(entry.Notes)
		}
		if note != "" {
			sub.Comments = []model.Comment{{
				ID:        uuid.New().String(),
				Type:      model.CommentNote,
				Author:    who,
				Text:      note,
				CreatedAt: s.now(),
			}}
		}
		created = append(created, sub)
	}
	if err := s.store.CreateSubmissions(ctx, model.DatasetLive, created); err != nil {
		return nil, fmt.Errorf("create submissions: %w", err)
	}
	for _, sub := range created {
		s.record(ctx, model.ActivitySubmission, "New submission created",
			fmt.Sprintf("%s %s (%s)", sub.ID, sub.Operator, sub.ReportType), who, sub.ID)
	}

	s.logger.Info("entry created", "operator", entry.Operator, "lease", entry.Lease, "submissions", len(created), "author", who)
	return created, nil
}

// resolveTasks fills report party and frequency defaults from the catalogue
// and rejects choices the report type does not offer.
func (s *Service) resolveTasks(tasks []EntryTask) error {
	var details []model.FieldError
	for i := range tasks {
		t := &tasks[i]
		prefix := fmt.Sprintf("tasks[%d].", i)
		rt, ok := s.catalog.ReportType(t.ReportType)
		if !ok {
			details = append(details, model.FieldError{Field: prefix + "report_type", Message: fmt.Sprintf("unknown report type %q", t.ReportType)})
			continue
		}
		if t.ReportParty == "" {
			t.ReportParty = rt.ReportParties[0]
		} else if !rt.AllowsParty(t.ReportParty) {
			details = append(details, model.FieldError{Field: prefix + "report_party", Message: fmt.Sprintf("must be one of: %s", strings.Join(rt.ReportParties, ", "))})
		}
		if t.Frequency == "" {
			t.Frequency = rt.DefaultFrequency
		} else if !rt.AllowsFrequency(t.Frequency) {
			details = append(details, model.FieldError{Field: prefix + "frequency", Message: fmt.Sprintf("must be one of: %s", strings.Join(rt.Frequencies, ", "))})
		}
	}
	if len(details) > 0 {
		return model.NewValidationError("invalid entry", details...)
	}
	return nil
}
