package scheduler

import (
	"context"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/syncer"
	"github.com/go-co-op/gocron"
)

// Syncer is the slice of the sync orchestrator the scheduler drives
type Syncer interface {
	Run(ctx context.Context, trigger syncer.Trigger)
}

// Scheduler fires the interval sync trigger while the application is
// running. Open and foreground triggers are fired by the app layer; this
// only owns the periodic one.
type Scheduler struct {
	scheduler *gocron.Scheduler
	syncer    Syncer
	interval  time.Duration
}

// New creates a new scheduler instance
func New(s Syncer, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		syncer:    s,
		interval:  interval,
	}
}

// Start begins running the interval trigger in a non-blocking manner
func (s *Scheduler) Start(ctx context.Context) {
	s.scheduler.Every(s.interval).Do(func() {
		s.syncer.Run(ctx, syncer.TriggerInterval)
	})
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
