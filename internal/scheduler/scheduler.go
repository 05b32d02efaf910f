package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vincentspereira/weatherdeck/internal/store"
)

// Janitor periodically sweeps expired sessions out of the store.
type Janitor struct {
	scheduler *gocron.Scheduler
	store     *store.SessionStore
	interval  time.Duration
}

// New creates a new Janitor.
func New(st *store.SessionStore, interval time.Duration) *Janitor {
	s := gocron.NewScheduler(time.UTC)
	return &Janitor{
		scheduler: s,
		store:     st,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	minutes := int(j.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := j.scheduler.Every(minutes).Minutes().Do(func() {
		evicted := j.store.Sweep()
		log.Printf("DEBUG: session sweep done, evicted=%d live=%d", evicted, j.store.Len())
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
