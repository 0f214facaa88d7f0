package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tickwatch/tickwatch/internal/sighting"
)

// Scheduler periodically logs a dataset summary so operators can see at a
// glance whether the store is populated and how far the data reaches. It
// runs outside the analytical core and never writes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *sighting.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *sighting.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic summary job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: summary interval disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		total, err := s.service.TotalRecords(ctx)
		if err != nil {
			log.Printf("scheduler: dataset summary failed: %v", err)
			return
		}
		if total == 0 {
			log.Println("scheduler: store is empty; waiting for an import")
			return
		}

		min, max, err := s.service.DateBounds(ctx)
		if err != nil {
			if !errors.Is(err, sighting.ErrNoData) {
				log.Printf("scheduler: dataset summary failed: %v", err)
			}
			return
		}
		log.Printf("scheduler: %d sightings stored, spanning %s to %s",
			total, min.Format("2006-01-02"), max.Format("2006-01-02"))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
