package handler

import (
	"net/http"
	"time"

	"betpromo/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Store     string    `json:"store"`
	Redis     string    `json:"redis,omitempty"`
}

// Check handles GET /health. It reports degraded while the data store has
// not loaded but still answers 200 so orchestrators keep the process alive.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "betpromo-api",
		Store:     "loaded",
	}

	if loaded, _ := h.container.Store.Loaded(); !loaded {
		response.Status = "degraded"
		response.Store = "loading"
	}

	if h.container.HasRedis() {
		response.Redis = "up"
		if err := h.container.RedisClient.Health(r.Context()); err != nil {
			logger.WithError(err).Warn("Redis health check failed")
			response.Redis = "down"
		}
	}

	writeJSON(w, http.StatusOK, response, logger)
}
