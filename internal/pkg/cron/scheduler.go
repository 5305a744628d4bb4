package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const jobTimeout = 10 * time.Minute

type job struct {
	name string
	run  func(ctx context.Context) error
}

// Scheduler fires its registered jobs once per day at a fixed local time.
type Scheduler struct {
	at     string // "HH:MM"
	loc    *time.Location
	logger *slog.Logger

	jobs []job
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewScheduler(at string, loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		at:     at,
		loc:    loc,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(name string, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, job{name: name, run: run})
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()

	s.logger.Info("scheduler started",
		slog.String("at", s.at),
		slog.String("timezone", s.loc.String()),
		slog.Int("jobs", len(s.jobs)))
}

func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.runAll()
		}
	}
}

func (s *Scheduler) runAll() {
	for _, j := range s.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		start := time.Now()
		if err := j.run(ctx); err != nil {
			s.logger.Error("scheduled job failed",
				slog.String("job", j.name),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("error", err))
		} else {
			s.logger.Info("scheduled job finished",
				slog.String("job", j.name),
				slog.Duration("elapsed", time.Since(start)))
		}
		cancel()
	}
}

// nextRun returns the next instant the configured wall-clock time occurs
// in the scheduler's timezone, strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	at, _ := time.Parse("15:04", s.at)
	local := now.In(s.loc)

	next := time.Date(local.Year(), local.Month(), local.Day(),
		at.Hour(), at.Minute(), 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
