package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FiltersUntrackedFacilities(t *testing.T) {
	capturedAt := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)

	records := normalize([]rawReading{
		{ID: "SSD-4", Capacity: 500, Fill: 125},
		{ID: "KAFI-9", Capacity: 40, Fill: 12},  // not in the catalog
		{ID: "SSD-999", Capacity: 100, Fill: 1}, // not in the catalog
		{ID: "SSD-5", Capacity: 1200, Fill: 900},
	}, capturedAt)

	require.Len(t, records, 2)
	assert.Equal(t, "SSD-4", records[0].PoolID)
	assert.Equal(t, "SSD-5", records[1].PoolID)
}

func TestNormalize_SharedCaptureTimestamp(t *testing.T) {
	capturedAt := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)

	records := normalize([]rawReading{
		{ID: "SSD-4", Capacity: 500, Fill: 125},
		{ID: "SSD-1", Capacity: 200, Fill: 40},
		{ID: "SSD-16", Capacity: 2000, Fill: 0},
	}, capturedAt)

	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, capturedAt, r.Timestamp)
	}
}

func TestNormalize_DerivedFields(t *testing.T) {
	capturedAt := time.Now().UTC()

	records := normalize([]rawReading{
		{ID: "SSD-4", Capacity: 500, Fill: 125},
	}, capturedAt)

	require.Len(t, records, 1)
	assert.Equal(t, "Hallenbad City", records[0].PoolName)
	assert.Equal(t, 125, records[0].CurrentFill)
	assert.Equal(t, 500, records[0].MaxCapacity)
	assert.Equal(t, 25.0, records[0].OccupancyPercent)
	assert.Equal(t, 2, records[0].OccupancyLevel)
}

func TestNormalize_UnknownCapacityAndNegativeFill(t *testing.T) {
	capturedAt := time.Now().UTC()

	records := normalize([]rawReading{
		{ID: "SSD-4", Capacity: 0, Fill: 80},
		{ID: "SSD-5", Capacity: -1, Fill: 80},
		{ID: "SSD-7", Capacity: 300, Fill: -2},
	}, capturedAt)

	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, 0, r.OccupancyLevel, "pool %s", r.PoolID)
		assert.Equal(t, 0.0, r.OccupancyPercent, "pool %s", r.PoolID)
		assert.GreaterOrEqual(t, r.CurrentFill, 0, "pool %s", r.PoolID)
	}
}
