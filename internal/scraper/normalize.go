package scraper

import (
	"time"

	"pool-occupancy-backend/internal/catalog"
	"pool-occupancy-backend/internal/model"
)

// normalize filters raw readings down to tracked facilities and derives the
// stored fields. Untracked ids are dropped silently; the upstream reports
// every facility it knows about, tracked or not.
func normalize(readings []rawReading, capturedAt time.Time) []model.OccupancyRecord {
	records := make([]model.OccupancyRecord, 0, len(readings))
	for _, r := range readings {
		pool, ok := catalog.Lookup(r.ID)
		if !ok {
			continue
		}

		fill := int(r.Fill)
		capacity := int(r.Capacity)

		// Derive from the raw values so a negative fill lands in level 0,
		// then clamp: stored counts are never negative.
		level := model.OccupancyLevel(fill, capacity)
		if fill < 0 {
			fill = 0
		}
		percent := model.OccupancyPercent(fill, capacity)
		if level == 0 {
			percent = 0
		}

		records = append(records, model.OccupancyRecord{
			Timestamp:        capturedAt,
			PoolID:           pool.ID,
			PoolName:         pool.Name,
			CurrentFill:      fill,
			MaxCapacity:      capacity,
			OccupancyPercent: percent,
			OccupancyLevel:   level,
		})
	}
	return records
}
