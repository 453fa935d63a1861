package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pool-occupancy-backend/internal/mw"
	"pool-occupancy-backend/internal/store"
)

// RouterOptions tunes the read API middleware.
type RouterOptions struct {
	RateLimitPerSec float64
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, opts RouterOptions) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	handler := NewHandler(s)

	// Every response carries permissive CORS headers, errors included.
	r.Use(mw.CORS())

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), 5)

	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/current", caching, handler.GetCurrent)
		api.GET("/history", caching, handler.GetHistory)
		api.GET("/pools", caching, handler.GetPools)
	}

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
