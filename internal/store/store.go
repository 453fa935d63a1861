package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pool-occupancy-backend/internal/model"
)

// Store defines the interface for all database operations on occupancy data.
type Store interface {
	// AppendSnapshot writes all records of one scrape as a single atomic
	// batch and returns the number of rows inserted.
	AppendSnapshot(ctx context.Context, records []model.OccupancyRecord) (int64, error)
	// LatestSnapshot returns every record carrying the maximum timestamp
	// currently stored, ordered by facility display name.
	LatestSnapshot(ctx context.Context) ([]model.OccupancyRecord, error)
	// RangeQuery returns records with timestamp >= since, ascending by
	// timestamp. A non-empty poolID restricts results to one facility.
	RangeQuery(ctx context.Context, since time.Time, poolID string) ([]model.OccupancyRecord, error)
	// DeleteOlderThan removes records with timestamp strictly before the
	// cutoff and returns the number removed. Idempotent.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) AppendSnapshot(ctx context.Context, records []model.OccupancyRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(&records)
		if res.Error != nil {
			return fmt.Errorf("failed to append snapshot batch: %w", res.Error)
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *gormStore) LatestSnapshot(ctx context.Context) ([]model.OccupancyRecord, error) {
	records := make([]model.OccupancyRecord, 0)
	err := s.db.WithContext(ctx).
		Where("timestamp = (?)", s.db.Model(&model.OccupancyRecord{}).Select("MAX(timestamp)")).
		Order("pool_name ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	return records, nil
}

func (s *gormStore) RangeQuery(ctx context.Context, since time.Time, poolID string) ([]model.OccupancyRecord, error) {
	records := make([]model.OccupancyRecord, 0)
	q := s.db.WithContext(ctx).Where("timestamp >= ?", since)
	if poolID != "" {
		q = q.Where("pool_id = ?", poolID)
	}
	if err := q.Order("timestamp ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read occupancy range: %w", err)
	}
	return records, nil
}

func (s *gormStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.OccupancyRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
