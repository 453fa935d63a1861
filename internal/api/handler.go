package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pool-occupancy-backend/internal/catalog"
	"pool-occupancy-backend/internal/store"
)

// History depth bounds. Requests outside the range are clamped, never
// rejected; a missing or unparseable value falls back to the default.
const (
	defaultHours = 24
	minHours     = 1
	maxHours     = 672 // 4 weeks
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// GetCurrent handles GET /api/current: the most recent complete snapshot,
// one record per facility, sorted by display name.
func (h *Handler) GetCurrent(c *gin.Context) {
	records, err := h.store.LatestSnapshot(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve current occupancy"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetHistory handles GET /api/history: records of the last `hours` hours,
// ascending by timestamp, optionally restricted to one facility.
func (h *Handler) GetHistory(c *gin.Context) {
	hours := clampHours(c.Query("hours"))
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	records, err := h.store.RangeQuery(c.Request.Context(), since, c.Query("pool"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve occupancy history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetPools handles GET /api/pools: the static facility catalog.
func (h *Handler) GetPools(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.All())
}

func clampHours(raw string) int {
	hours, err := strconv.Atoi(raw)
	if err != nil {
		return defaultHours
	}
	if hours < minHours {
		return minHours
	}
	if hours > maxHours {
		return maxHours
	}
	return hours
}
