// Package monitoring runs the fixture backend's background jobs.
package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// PlantingConfirmer settles plantings that are still in progress.
type PlantingConfirmer interface {
	ConfirmPlantings() int
}

// Scheduler confirms in-progress plantings on a cron schedule, standing in for the
// planting partner's callback.
type Scheduler struct {
	target   PlantingConfirmer
	schedule cron.Schedule
	tick     time.Duration
	now      func() time.Time
	notify   func(confirmed int)

	nextRun  time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler for a standard cron expression or descriptor such as "@every 1m".
func NewScheduler(target PlantingConfirmer, spec string) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid planting schedule %q: %w", spec, err)
	}
	return &Scheduler{
		target:   target,
		schedule: schedule,
		tick:     time.Second,
		now:      time.Now,
		done:     make(chan struct{}),
	}, nil
}

// OnConfirmed sets a callback invoked after a run that confirmed at least one planting.
// It must be called before Run.
func (s *Scheduler) OnConfirmed(fn func(confirmed int)) {
	s.notify = fn
}

// Run starts the scheduler's ticking loop. It returns after Stop.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting planting scheduler")
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.nextRun = s.schedule.Next(s.now())
	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping planting scheduler")
			return
		case <-ticker.C:
			s.runDue(s.now())
		}
	}
}

// Stop halts the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// runDue confirms plantings if the next run time has passed and reports whether it did.
func (s *Scheduler) runDue(now time.Time) bool {
	if now.Before(s.nextRun) {
		return false
	}
	s.nextRun = s.schedule.Next(now)

	if n := s.target.ConfirmPlantings(); n > 0 {
		log.Info().Int("confirmed", n).Msg("Plantings confirmed")
		if s.notify != nil {
			s.notify(n)
		}
	}
	return true
}
