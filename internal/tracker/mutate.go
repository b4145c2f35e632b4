package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/me/optrack/pkg/model"
)

// StatusChange moves a submission to a new status with a reason.
type StatusChange struct {
	Status model.Status `json:"status" validate:"required,status"`
	Reason string       `json:"reason" validate:"required"`
	Author string       `json:"author,omitempty"`
}

// UpdateStatus replaces the status and appends a status-change comment.
// Setting the current status again is allowed and still records the reason.
func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusChange) (*model.Submission, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.check(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	who := author(req.Author)
	previous := sub.Status
	sub.Status = req.Status
	sub.Comments = append(sub.Comments, model.Comment{
		ID:        uuid.New().String(),
		Type:      model.CommentStatusChange,
		Author:    who,
		Text:      req.Reason,
		Status:    req.Status,
		CreatedAt: s.now(),
	})
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}

	typ := model.ActivityStatus
	switch req.Status {
	case model.StatusApproved:
		typ = model.ActivityApproval
	case model.StatusOverdue:
		typ = model.ActivityOverdue
	}
	s.record(ctx, typ, "Status changed to "+req.Status.Label(),
		fmt.Sprintf("%s %s (%s): %s", sub.ID, sub.Operator, sub.ReportType, req.Reason), who, sub.ID)
	s.logger.Info("status updated", "submission_id", id, "from", previous, "to", req.Status, "author", who)
	return sub, nil
}

// NewComment appends a typed comment.
type NewComment struct {
	Text   string            `json:"text" validate:"required"`
	Type   model.CommentType `json:"type,omitempty" validate:"commenttype"`
	Author string            `json:"author,omitempty"`
}

// AddComment appends a comment. An empty type means general.
func (s *Service) AddComment(ctx context.Context, id string, req NewComment) (*model.Submission, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Type == "" {
		req.Type = model.CommentGeneral
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	who := author(req.Author)
	sub.Comments = append(sub.Comments, model.Comment{
		ID:        uuid.New().String(),
		Type:      req.Type,
		Author:    who,
		Text:      req.Text,
		CreatedAt: s.now(),
	})
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}

	s.record(ctx, model.ActivityComment, "Comment added",
		fmt.Sprintf("%s %s: [%s] %s", sub.ID, sub.Operator, req.Type, req.Text), who, sub.ID)
	s.logger.Info("comment added", "submission_id", id, "type", req.Type, "author", who)
	return sub, nil
}

// SubmissionEdit carries every editable field of a submission. The id and
// comment history are not editable.
type SubmissionEdit struct {
	Operator         string       `json:"operator" validate:"required"`
	Category         string       `json:"category"`
	ReportType       string       `json:"report_type"`
	ReportParty      string       `json:"report_party"`
	Frequency        string       `json:"frequency"`
	Period           string       `json:"period"`
	LeaseName        string       `json:"lease_name" validate:"required"`
	Properties       string       `json:"properties"`
	DueDate          string       `json:"due_date" validate:"omitempty,date"`
	ReceivedDate     string       `json:"received_date" validate:"omitempty,date"`
	Status           model.Status `json:"status" validate:"required,status"`
	ReviewerApprover string       `json:"reviewer_approver"`
	AssetManager     string       `json:"asset_manager"`
	InvManager       string       `json:"inv_manager"`
	LeaseAdmin       string       `json:"lease_admin"`
	InvAssociate     string       `json:"inv_associate"`
	DaysUnderStatus  int          `json:"days_under_status" validate:"gte=0"`
	Author           string       `json:"author,omitempty"`
}

// EditOf prefills an edit with the current values of sub.
func EditOf(sub *model.Submission) SubmissionEdit {
	return SubmissionEdit{
		Operator:         sub.Operator,
		Category:         sub.Category,
		ReportType:       sub.ReportType,
		ReportParty:      sub.ReportParty,
		Frequency:        sub.Frequency,
		Period:           sub.Period,
		LeaseName:        sub.LeaseName,
		Properties:       sub.Properties,
		DueDate:          sub.DueDate,
		ReceivedDate:     sub.ReceivedDate,
		Status:           sub.Status,
		ReviewerApprover: sub.ReviewerApprover,
		AssetManager:     sub.AssetManager,
		InvManager:       sub.InvManager,
		LeaseAdmin:       sub.LeaseAdmin,
		InvAssociate:     sub.InvAssociate,
		DaysUnderStatus:  sub.DaysUnderStatus,
	}
}

// UpdateSubmission overwrites the editable fields.
func (s *Service) UpdateSubmission(ctx context.Context, id string, edit SubmissionEdit) (*model.Submission, error) {
	edit.Operator = strings.TrimSpace(edit.Operator)
	edit.LeaseName = strings.TrimSpace(edit.LeaseName)
	edit.DueDate = strings.TrimSpace(edit.DueDate)
	edit.ReceivedDate = strings.TrimSpace(edit.ReceivedDate)
	if err := s.check(edit); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Operator = edit.Operator
	sub.Category = edit.Category
	sub.ReportType = edit.ReportType
	sub.ReportParty = edit.ReportParty
	sub.Frequency = edit.Frequency
	sub.Period = edit.Period
	sub.LeaseName = edit.LeaseName
	sub.Properties = edit.Properties
	sub.DueDate = edit.DueDate
	sub.ReceivedDate = edit.ReceivedDate
	sub.Status = edit.Status
	sub.ReviewerApprover = edit.ReviewerApprover
	sub.AssetManager = edit.AssetManager
	sub.InvManager = edit.InvManager
	sub.LeaseAdmin = edit.LeaseAdmin
	sub.InvAssociate = edit.InvAssociate
	sub.DaysUnderStatus = edit.DaysUnderStatus
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}

	who := author(edit.Author)
	s.record(ctx, model.ActivityUpdate, "Submission updated",
		fmt.Sprintf("%s %s (%s)", sub.ID, sub.Operator, sub.ReportType), who, sub.ID)
	s.logger.Info("submission updated", "submission_id", id, "author", who)
	return sub, nil
}

// NewFutureTask schedules a follow-up against a submission.
type NewFutureTask struct {
	Task     string         `json:"task" validate:"required"`
	Assignee string         `json:"assignee" validate:"required"`
	DueDate  string         `json:"due_date" validate:"required,date"`
	Priority model.Priority `json:"priority,omitempty" validate:"oneof=high medium low"`
}

// AddFutureTask creates a pending task. Priority defaults to medium.
func (s *Service) AddFutureTask(ctx context.Context, submissionID string, req NewFutureTask) (*model.FutureTask, error) {
	req.Task = strings.TrimSpace(req.Task)
	req.Assignee = strings.TrimSpace(req.Assignee)
	req.DueDate = strings.TrimSpace(req.DueDate)
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.loadLive(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	task := &model.FutureTask{
		ID:           uuid.New().String(),
		SubmissionID: sub.ID,
		Task:         req.Task,
		Assignee:     req.Assignee,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       model.TaskStatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateFutureTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create future task: %w", err)
	}

	s.record(ctx, model.ActivityUpdate, "Future task scheduled",
		fmt.Sprintf("%s: %s (assigned to %s, due %s)", sub.ID, task.Task, task.Assignee, task.DueDate), DefaultAuthor, sub.ID)
	s.logger.Info("future task added", "submission_id", sub.ID, "task_id", task.ID)
	return task, nil
}

// FutureTasks lists the tasks of a submission in creation order.
func (s *Service) FutureTasks(ctx context.Context, submissionID string) ([]*model.FutureTask, error) {
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("get submission %s: %w", submissionID, err)
	}
	if sub == nil {
		return nil, model.NewNotFoundError("submission", submissionID)
	}
	tasks, err := s.store.ListFutureTasks(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list future tasks: %w", err)
	}
	return tasks, nil
}

// RemoveFutureTask deletes a task.
func (s *Service) RemoveFutureTask(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.DeleteFutureTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("delete future task %s: %w", taskID, err)
	}
	if !ok {
		return model.NewNotFoundError("future task", taskID)
	}
	s.logger.Info("future task removed", "task_id", taskID)
	return nil
}
