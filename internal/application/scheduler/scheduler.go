// Package scheduler runs the periodic background jobs of the API: the daily
// compliance sweep and the hourly cleanup of expired keys and tokens.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sangkips/bizhub-api/internal/application/service"
)

// Job is one unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner. Overlapping runs of the same job are
// skipped and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a scheduler. Each run gets a context bounded by timeout.
func New(timeout time.Duration) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	ctx, cancel := context.WithCancel(context.Background())
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add registers job under spec, a standard five field expression or a
// descriptor such as @hourly.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Printf("Warning: job %s failed after %v: %v", name, time.Since(start), err)
		return
	}
	log.Printf("Job %s finished in %v", name, time.Since(start))
}

// Start begins running registered jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// SweepJob runs the compliance sweep. The sweeper logs its own summary.
func SweepJob(sweeper *service.ComplianceSweeper) Job {
	return func(ctx context.Context) error {
		_, err := sweeper.Run(ctx)
		return err
	}
}

// Purger deletes expired records and reports how many went
type Purger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// CleanupJob purges every named store. A failing store does not stop the
// others; the first error is returned.
func CleanupJob(purgers map[string]Purger) Job {
	return func(ctx context.Context) error {
		var firstErr error
		for name, p := range purgers {
			n, err := p.DeleteExpired(ctx)
			if err != nil {
				log.Printf("Warning: cleanup of %s failed: %v", name, err)
				if firstErr == nil {
					firstErr = fmt.Errorf("cleanup %s: %w", name, err)
				}
				continue
			}
			if n > 0 {
				log.Printf("Cleanup removed %d expired %s", n, name)
			}
		}
		return firstErr
	}
}
