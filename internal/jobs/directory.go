package jobs

import (
	"context"
	"log/slog"

	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/pkg/model"
)

// Refresh applies the directory to subs in place and returns the ones that
// changed. Relationship teams apply to every submission of a mapped operator;
// reviewers apply by report type only while the submission is still open.
func Refresh(subs []*model.Submission, dir *seed.Directory) []*model.Submission {
	var changed []*model.Submission
	for _, s := range subs {
		before := *s
		if rel, ok := dir.Relationships[s.Operator]; ok {
			s.AssetManager = rel.AssetManager
			s.LeaseAdmin = rel.LeaseAdmin
			s.InvManager = rel.InvManager
			s.InvAssociate = rel.InvAssociate
		}
		if reviewer, ok := dir.Reviewers[s.ReportType]; ok && !s.Status.IsClosed() {
			s.ReviewerApprover = reviewer
		}
		if s.AssetManager != before.AssetManager ||
			s.LeaseAdmin != before.LeaseAdmin ||
			s.InvManager != before.InvManager ||
			s.InvAssociate != before.InvAssociate ||
			s.ReviewerApprover != before.ReviewerApprover {
			changed = append(changed, s)
		}
	}
	return changed
}

// Applier runs a read-modify-write pass over a dataset.
type Applier interface {
	Apply(ctx context.Context, dataset model.Dataset, fn func([]*model.Submission) []*model.Submission) (int, error)
}

// DirectoryJob refreshes the live submissions from the relationship directory.
type DirectoryJob struct {
	target Applier
	dir    *seed.Directory
	logger *slog.Logger
}

// NewDirectoryJob creates a DirectoryJob.
func NewDirectoryJob(target Applier, dir *seed.Directory, logger *slog.Logger) *DirectoryJob {
	return &DirectoryJob{target: target, dir: dir, logger: logger.With("component", "directory")}
}

func (j *DirectoryJob) Name() string { return "directory-refresh" }

func (j *DirectoryJob) Run(ctx context.Context) error {
	_, err := j.RunOnce(ctx)
	return err
}

// RunOnce refreshes and returns how many submissions changed.
func (j *DirectoryJob) RunOnce(ctx context.Context) (int, error) {
	n, err := j.target.Apply(ctx, model.DatasetLive, func(subs []*model.Submission) []*model.Submission {
		return Refresh(subs, j.dir)
	})
	if err != nil {
		return 0, err
	}
	j.logger.Info("directory refreshed", "updated", n)
	return n, nil
}
