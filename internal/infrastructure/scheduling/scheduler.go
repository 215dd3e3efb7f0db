package scheduling

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/batch"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
)

type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler fires the batch billing job on a cron spec; the default
// spec ("0 0 1 * *") is the first instant of every month.
type Scheduler struct {
	cron   *cron.Cron
	job    Runner
	logger logging.Logger
	spec   string
}

func New(spec string, job Runner, logger logging.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		job:    job,
		logger: logger,
		spec:   spec,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.job.Run(context.Background()); err != nil {
			if errors.Is(err, batch.ErrAlreadyRunning) {
				s.logger.Info("skipping scheduled run, previous run still in progress", nil)
				return
			}
			s.logger.Error("scheduled billing run failed", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("billing schedule started", map[string]any{"spec": s.spec})
	return nil
}

// Stop halts the schedule; the returned context is done once any
// in-flight run triggered by cron has returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
