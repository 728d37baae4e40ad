// Package scheduler runs the periodic overdue-borrows report.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type BorrowCounter interface {
	CountOverdue(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
}

// New registers the overdue report on the given cron spec
// (seconds-precision, UTC).
func New(spec string, br BorrowCounter, log *slog.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := br.CountOverdue(ctx)
		if err != nil {
			log.Error("overdue report failed", "err", err)
			return
		}
		log.Info("overdue borrows", "count", n)
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling; a running report finishes on its own.
func (s *Scheduler) Stop() { s.cron.Stop() }
