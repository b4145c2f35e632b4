// Package jobs runs the periodic background work: reminder checks and the
// relationship directory refresh.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config holds loop configuration.
type Config struct {
	Interval time.Duration
}

// DefaultConfig runs jobs once a day.
func DefaultConfig() Config {
	return Config{Interval: 24 * time.Hour}
}

// DemoConfig runs jobs every 30 seconds.
func DemoConfig() Config {
	return Config{Interval: 30 * time.Second}
}

// Job is one unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Loop runs its jobs immediately on Start and then on every interval.
type Loop struct {
	jobs     []Job
	config   Config
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop over jobs.
func NewLoop(cfg Config, logger *slog.Logger, jobs ...Job) *Loop {
	return &Loop{
		jobs:   jobs,
		config: cfg,
		logger: logger.With("component", "jobs"),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start runs the loop. Blocks until ctx is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	defer close(l.doneCh)
	l.logger.Info("job loop started", "interval", l.config.Interval, "jobs", len(l.jobs))

	if err := l.Tick(ctx); err != nil {
		l.logger.Error("tick error", "error", err)
	}

	ticker := time.NewTicker(l.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("job loop stopping (context cancelled)")
			return ctx.Err()
		case <-l.stopCh:
			l.logger.Info("job loop stopping (stop called)")
			return nil
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				l.logger.Error("tick error", "error", err)
			}
		}
	}
}

// Stop shuts the loop down and waits for the current tick to finish.
// It must only be called after Start.
func (l *Loop) Stop() error {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.doneCh
	return nil
}

// Tick runs every job once. A failing job does not prevent the others from running.
func (l *Loop) Tick(ctx context.Context) error {
	var errs []error
	for _, j := range l.jobs {
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", j.Name(), err))
			continue
		}
		l.logger.Debug("job finished", "job", j.Name(), "duration", time.Since(start))
	}
	return errors.Join(errs...)
}
