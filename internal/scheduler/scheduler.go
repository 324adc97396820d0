package scheduler

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/go-co-op/gocron"
)

// WarmFunc is the job the scheduler runs on every tick.
type WarmFunc func(ctx context.Context) error

// Scheduler periodically touches the cloud list so an expired cache entry is
// refreshed in the background rather than on a user request.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warm      WarmFunc
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables it.
func New(interval, timeout time.Duration, warm WarmFunc) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		warm:      warm,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || s.warm == nil {
		log.Info("scheduler: cache warmer disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.WithField("interval", s.interval.String()).Info("scheduler: cache warmer started")
	return nil
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.warm(ctx); err != nil {
		log.WithError(err).Warn("scheduler: cache warm failed")
		return
	}
	log.Debug("scheduler: cache warm completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
