package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

const DefaultSpec = "@every 1h"

const runTimeout = 5 * time.Minute

type Reconciler interface {
	ReconcileLikeCounts(ctx context.Context) (int, error)
}

// Scheduler runs the like-counter reconcile on a cron spec in UTC.
type Scheduler struct {
	log  *logger.Logger
	cron *cron.Cron
	spec string
	rec  Reconciler
}

// New returns nil when spec is empty, which disables the job.
func New(log *logger.Logger, spec string, rec Reconciler) (*Scheduler, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if rec == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	s := &Scheduler{
		log:  log.With("job", "ReconcileLikeCounts"),
		spec: spec,
		rec:  rec,
	}
	cl := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return s, nil
}

// RunOnce performs a single reconcile pass.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	fixed, err := s.rec.ReconcileLikeCounts(ctx)
	if err != nil {
		s.log.Error("reconcile failed", "fixed", fixed, "error", err)
		return fixed, err
	}
	s.log.Info("reconcile done", "fixed", fixed, "duration_ms", time.Since(start).Milliseconds())
	return fixed, nil
}

// Run schedules the job and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid RECONCILE_CRON %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("reconcile scheduler started", "spec", s.spec)

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.log.Info("reconcile scheduler stopped")
	return nil
}

// Validate reports whether spec parses.
func Validate(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	_, err := cron.ParseStandard(spec)
	return err
}

type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
