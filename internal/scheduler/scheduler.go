// Package scheduler runs recurring ingestion on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/secnews/internal/domain"
	"github.com/jonesrussell/secnews/internal/logger"
)

// Runner executes one ingestion run.
type Runner interface {
	RunAll(ctx context.Context) (*domain.RunSummary, error)
}

// Scheduler triggers ingestion runs on a cron expression.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	log    logger.Interface
}

// New creates a scheduler with the given cron expression. Overlapping runs
// are skipped rather than queued.
func New(schedule string, runner Runner, log logger.Interface) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{log}))),
		runner: runner,
		log:    log,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid crawl schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start runs the scheduler until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("Scheduler started")
	s.cron.Start()

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	// Wait for an in-flight run to finish before returning.
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) run() {
	summary, err := s.runner.RunAll(context.Background())
	if err != nil {
		s.log.Error("Scheduled run failed", "error", err.Error())
		return
	}
	s.log.Info("Scheduled run finished", "added", summary.TotalAdded)
}

// cronLogger adapts the application logger to the cron logging interface.
type cronLogger struct {
	log logger.Interface
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error(msg, append(keysAndValues, "error", err.Error())...)
}
