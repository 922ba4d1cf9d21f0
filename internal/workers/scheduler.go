package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

// Scheduler runs background jobs on cron specs.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
	}
}

// AddLikeReconciler schedules rec under spec, e.g. "@every 10m". Each run is
// bounded by timeout when it is positive.
func (s *Scheduler) AddLikeReconciler(spec string, rec domain.LikeReconciler, timeout time.Duration) error {
	_, err := s.cron.AddJob(spec, cron.FuncJob(func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		fixed, err := rec.Reconcile(ctx)
		if err != nil {
			logrus.Errorf("like reconciliation failed after %d fixes: %v", fixed, err)
			return
		}
		logrus.Infof("like reconciliation done, %d counters fixed in %s", fixed, time.Since(start))
	}))
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logrus.Warn("scheduler stopped before running jobs finished")
	}
}
