package digest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler fires the digest job once per day at a configured hour. It is a
// convenience for single-process deployments; an external trigger can call
// RunAll directly instead.
type Scheduler struct {
	job     *Job
	subs    []Subscription
	hour    int
	tickDur time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu      sync.Mutex
	lastRun time.Time

	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a daily scheduler. hour is the local hour [0,23] at
// which to fire; now defaults to the wall clock when nil.
func NewScheduler(job *Job, subs []Subscription, hour int, now func() time.Time, logger *zap.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		job:     job,
		subs:    subs,
		hour:    hour,
		tickDur: time.Minute,
		now:     now,
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the scheduling loop.
func (s *Scheduler) Start() {
	go s.loop()
	s.logger.Info("digest scheduler started",
		zap.Int("hour", s.hour), zap.Int("subscribers", len(s.subs)))
}

// Stop halts the loop and waits for it to exit. Safe to call once.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

// RunAll executes one digest run per subscriber.
func (s *Scheduler) RunAll(ctx context.Context) int {
	for _, sub := range s.subs {
		s.job.Run(ctx, sub)
	}
	return len(s.subs)
}

func (s *Scheduler) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.tickDur)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick fires at most once per day: when the clock enters the configured hour
// and the last run is more than an hour old.
func (s *Scheduler) tick() {
	now := s.now()

	s.mu.Lock()
	due := now.Hour() == s.hour && (s.lastRun.IsZero() || now.Sub(s.lastRun) > time.Hour)
	if due {
		s.lastRun = now
	}
	s.mu.Unlock()

	if !due {
		return
	}
	s.logger.Info("daily digest due")
	s.RunAll(context.Background())
}
