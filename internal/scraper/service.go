package scraper

import (
	"context"
	"fmt"
	"log"

	"pool-occupancy-backend/config"
	"pool-occupancy-backend/internal/store"
)

// Service orchestrates one scrape cycle: fetch a snapshot from the upstream
// feed and persist it through the store.
type Service struct {
	connector *Connector
	store     store.Store
}

// NewService creates and initializes a new scraper service.
func NewService(cfg *config.Config, st store.Store) *Service {
	return &Service{
		connector: NewConnector(&cfg.Scraper),
		store:     st,
	}
}

// ScrapeOnce performs a single scrape-and-store round trip. Either the whole
// snapshot is appended or nothing is written.
func (s *Service) ScrapeOnce(ctx context.Context) error {
	records, err := s.connector.FetchSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if len(records) == 0 {
		// No tracked facility in the payload, e.g. everything closed for
		// the season. Valid, nothing to persist.
		log.Println("Scrape cycle finished: no tracked facilities in snapshot.")
		return nil
	}

	count, err := s.store.AppendSnapshot(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	log.Printf("Scrape cycle finished: stored %d records at %s.", count, records[0].Timestamp.Format("2006-01-02T15:04:05Z"))
	return nil
}
