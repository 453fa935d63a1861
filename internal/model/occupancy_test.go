package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyDerivation(t *testing.T) {
	testCases := []struct {
		name            string
		fill            int
		capacity        int
		expectedPercent float64
		expectedLevel   int
	}{
		{name: "quarter full", fill: 50, capacity: 200, expectedPercent: 25.00, expectedLevel: 2},
		{name: "empty pool", fill: 0, capacity: 300, expectedPercent: 0, expectedLevel: 1},
		{name: "exactly full", fill: 300, capacity: 300, expectedPercent: 100, expectedLevel: 4},
		{name: "overfull clamps to level 4", fill: 450, capacity: 300, expectedPercent: 150, expectedLevel: 4},
		{name: "just under quartile boundary", fill: 124, capacity: 500, expectedPercent: 24.8, expectedLevel: 1},
		{name: "rounding to two decimals", fill: 1, capacity: 3, expectedPercent: 33.33, expectedLevel: 2},
		{name: "zero capacity is unknown", fill: 80, capacity: 0, expectedPercent: 0, expectedLevel: 0},
		{name: "negative capacity is unknown", fill: 80, capacity: -1, expectedPercent: 0, expectedLevel: 0},
		{name: "negative fill is invalid", fill: -5, capacity: 200, expectedLevel: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fill >= 0 {
				assert.Equal(t, tc.expectedPercent, OccupancyPercent(tc.fill, tc.capacity))
			}
			assert.Equal(t, tc.expectedLevel, OccupancyLevel(tc.fill, tc.capacity))
		})
	}
}
