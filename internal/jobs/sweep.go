// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Expirer closes active campaigns whose deadline has passed.
type Expirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// Sweeper periodically expires overdue campaigns so their status does not
// depend on somebody trying to donate.
type Sweeper struct {
	cron    *cron.Cron
	expirer Expirer
	log     *zap.Logger
	timeout time.Duration
}

func NewSweeper(schedule string, e Expirer, log *zap.Logger) (*Sweeper, error) {
	log = log.Named("sweeper")
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))
	s := &Sweeper{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		expirer: e,
		log:     log,
		timeout: time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
	s.log.Info("overdue campaign sweep started")
}

// Stop prevents new runs and waits for a running one until ctx is done.
func (s *Sweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("sweep still running at shutdown")
	}
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	changed, err := s.expirer.ExpireOverdue(ctx)
	if err != nil {
		return changed, err
	}
	if changed > 0 {
		s.log.Info("expired overdue campaigns", zap.Int("count", changed))
	}
	return changed, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("overdue campaign sweep failed", zap.Error(err))
	}
}
