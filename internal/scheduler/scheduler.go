// Package scheduler runs the periodic jobs of the advisory server.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"agro-advisor/internal/common/logger"
)

// Rotator advances a rotating content window, such as the tips of the day.
type Rotator interface {
	Advance()
	Rotations() int
}

type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

// New schedules tips.Advance on schedule, a standard five field cron expression
// or a descriptor such as @daily.
func New(schedule string, tips Rotator, log logger.Logger) (*Scheduler, error) {
	log = log.WithFields(map[string]interface{}{"component": "scheduler"})
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		tips.Advance()
		log.Info("Tips of the day rotated", map[string]interface{}{"rotations": tips.Rotations()})
	})
	if err != nil {
		return nil, fmt.Errorf("invalid tip schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("Scheduler started", map[string]interface{}{"entries": len(s.cron.Entries())})

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped", nil)
	return nil
}
