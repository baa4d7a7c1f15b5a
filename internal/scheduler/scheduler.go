// Package scheduler drives the minute tick for escalation checks.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/routine"
)

// Start registers the escalation tick and starts the scheduler. The caller
// shuts it down with s.Shutdown().
func Start(esc *routine.Escalator, logger *logrus.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := esc.Tick(ctx); err != nil {
				logger.Errorf("escalation tick failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	logger.Info("escalation scheduler started (1m tick)")
	return s, nil
}
