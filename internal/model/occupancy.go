package model

import (
	"math"
	"time"
)

// OccupancyRecord is one observation of one facility at one instant. Records
// are append-only: created by the scraper, removed only by retention cleanup.
type OccupancyRecord struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	Timestamp        time.Time `gorm:"not null;index;index:idx_occupancy_pool_time,priority:2" json:"timestamp"`
	PoolID           string    `gorm:"size:32;not null;index:idx_occupancy_pool_time,priority:1" json:"pool_id"`
	PoolName         string    `gorm:"size:128;not null" json:"pool_name"`
	CurrentFill      int       `gorm:"not null" json:"current_fill"`
	MaxCapacity      int       `gorm:"not null" json:"max_capacity"`
	OccupancyPercent float64   `gorm:"not null" json:"occupancy_percent"`
	OccupancyLevel   int       `gorm:"not null" json:"occupancy_level"`
}

// TableName keeps the historical table name.
func (OccupancyRecord) TableName() string { return "occupancy" }

// OccupancyPercent derives the two-decimal fill percentage. A capacity of
// zero or less means the upstream does not know the facility's capacity.
func OccupancyPercent(fill, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Round(float64(fill)/float64(capacity)*10000) / 100
}

// OccupancyLevel buckets a reading into quartile levels 1-4. Level 0 is
// reserved for unknown capacity or a negative fill.
func OccupancyLevel(fill, capacity int) int {
	if capacity <= 0 || fill < 0 {
		return 0
	}
	percent := OccupancyPercent(fill, capacity)
	level := int(math.Floor(percent/25)) + 1
	if level > 4 {
		level = 4
	}
	return level
}
