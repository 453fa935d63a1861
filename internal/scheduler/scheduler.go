package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"pool-occupancy-backend/config"
)

// Ingester performs one scrape-and-store cycle.
type Ingester interface {
	ScrapeOnce(ctx context.Context) error
}

// Cleaner removes records older than the cutoff.
type Cleaner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler fires the scrape pipeline on a fixed cadence and the retention
// cleanup once per day. The two actions are independent: a failing scrape
// never skips the cleanup check and vice versa.
type Scheduler struct {
	scheduler *gocron.Scheduler
	ingester  Ingester
	cleaner   Cleaner
	interval  time.Duration
	retention time.Duration
	// Cleanup runs only on ticks inside [cleanupHour:00, cleanupHour:windowMinutes).
	cleanupHour   int
	windowMinutes int
	tickTimeout   time.Duration
}

// New creates a Scheduler from the scraper and retention configuration.
func New(cfg *config.Config, ingester Ingester, cleaner Cleaner) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		ingester:      ingester,
		cleaner:       cleaner,
		interval:      cfg.Scraper.Interval,
		retention:     time.Duration(cfg.Retention.Days) * 24 * time.Hour,
		cleanupHour:   cfg.Retention.CleanupHour,
		windowMinutes: cfg.Retention.WindowMinutes,
		tickTimeout:   30 * time.Second,
	}
}

// Start schedules the periodic tick and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.Tick(time.Now().UTC())
	})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future ticks.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Tick runs one scheduled invocation: always a scrape, plus the retention
// cleanup when now falls inside the daily window. Failures are logged at
// this boundary and never propagate.
func (s *Scheduler) Tick(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), s.tickTimeout)
	defer cancel()

	if err := s.ingester.ScrapeOnce(ctx); err != nil {
		log.Printf("scheduler: %v", err)
	}

	if !s.inCleanupWindow(now) {
		return
	}

	cutoff := now.Add(-s.retention)
	deleted, err := s.cleaner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("scheduler: retention cleanup failed: %v", err)
		return
	}
	log.Printf("scheduler: retention cleanup removed %d records older than %s", deleted, cutoff.Format("2006-01-02"))
}

func (s *Scheduler) inCleanupWindow(now time.Time) bool {
	return now.Hour() == s.cleanupHour && now.Minute() < s.windowMinutes
}
