package handlers

import (
	"net/http"
	"runtime"
	"time"

	"tableside/internal/caching"
	"tableside/internal/events"
	"tableside/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db      *pgxpool.Pool
	cache   caching.CacheService
	storage services.MinioService
	bus     *events.Bus
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cache caching.CacheService, storage services.MinioService, bus *events.Bus) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		storage: storage,
		bus:     bus,
	}
}

// Root handles GET /api/
func (h *HealthHandlers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Restaurant API",
	})
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck reports per-dependency health. Any unhealthy dependency
// degrades the overall status but the endpoint still answers.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.checkDatabase(c); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cache.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if err := h.storage.EnsureBucket(ctx); err != nil {
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	return c.JSON(statusCode, health)
}

// checkDatabase verifies database connectivity
func (h *HealthHandlers) checkDatabase(c echo.Context) error {
	_, err := h.db.Exec(c.Request().Context(), "SELECT 1")
	return err
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the database is load-bearing; the cache and storage degrade gracefully.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.checkDatabase(c); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsResponse represents application metrics
type MetricsResponse struct {
	Timestamp  time.Time      `json:"timestamp"`
	Goroutines int            `json:"goroutines"`
	Metrics    map[string]any `json:"metrics"`
}

// GetMetrics provides application performance metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	poolStats := h.db.Stat()
	busStats := h.bus.Stats()

	metrics := &MetricsResponse{
		Timestamp:  time.Now().UTC(),
		Goroutines: runtime.NumGoroutine(),
		Metrics: map[string]any{
			"database_connections": map[string]any{
				"max":      poolStats.MaxConns(),
				"total":    poolStats.TotalConns(),
				"idle":     poolStats.IdleConns(),
				"acquired": poolStats.AcquiredConns(),
			},
			"event_bus": map[string]any{
				"connections": busStats.Connections,
				"published":   busStats.Published,
				"delivered":   busStats.Delivered,
				"dropped":     busStats.Dropped,
			},
		},
	}

	return c.JSON(http.StatusOK, metrics)
}
