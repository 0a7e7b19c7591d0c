// Package scheduler runs the periodic cache housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/service"
)

// Scheduler periodically sweeps expired cache rows and refreshes forecasts
// for saved places in the background.
type Scheduler struct {
	scheduler       *gocron.Scheduler
	svc             *service.ForecastService
	sweepInterval   time.Duration
	refreshInterval time.Duration
	retention       time.Duration
}

// New creates a new Scheduler.
func New(svc *service.ForecastService, sweepInterval, refreshInterval, retention time.Duration) *Scheduler {
	return &Scheduler{
		scheduler:       gocron.NewScheduler(time.UTC),
		svc:             svc,
		sweepInterval:   sweepInterval,
		refreshInterval: refreshInterval,
		retention:       retention,
	}
}

// Start schedules the jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.sweepInterval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		s.svc.SweepExpired(ctx, s.retention)
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Every(s.refreshInterval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		s.svc.RefreshSavedPlaces(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	logger.Info("scheduler started")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
