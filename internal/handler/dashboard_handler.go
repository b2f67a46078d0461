package handler

import (
	"net/http"

	"betpromo/internal/container"
	"betpromo/internal/domain"
)

// DashboardHandler serves the admin dashboard projections: global stats,
// the weekday series, the activity feed and the monthly history.
type DashboardHandler struct {
	container *container.Container
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(container *container.Container) *DashboardHandler {
	return &DashboardHandler{
		container: container,
	}
}

// StatsResponse augments the stored counters with the derived rate and the
// projected revenue.
type StatsResponse struct {
	domain.GlobalStats
	ConversionRate float64 `json:"conversionRate"`
	RevenueFCFA    float64 `json:"revenueFcfa"`
}

// OverviewResponse bundles the projections the dashboard page loads in one
// request.
type OverviewResponse struct {
	Stats      StatsResponse           `json:"stats"`
	Weekly     []domain.DailyAnalytics `json:"weekly"`
	Activities []domain.Activity       `json:"activities"`
}

// Overview handles GET /api/admin/dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	writeJSON(w, http.StatusOK, OverviewResponse{
		Stats:      h.statsResponse(),
		Weekly:     h.container.Store.WeeklyAnalytics(),
		Activities: h.container.Store.Activities(),
	}, logger)
}

// Stats handles GET /api/admin/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.statsResponse(), logger)
}

func (h *DashboardHandler) statsResponse() StatsResponse {
	stats := h.container.Store.Stats()

	response := StatsResponse{
		GlobalStats: stats,
		RevenueFCFA: h.container.Reports.RevenueFCFA(stats.TotalConversions),
	}
	if stats.TotalClicks > 0 {
		response.ConversionRate = float64(stats.TotalConversions) / float64(stats.TotalClicks) * 100
	}
	return response
}

// Analytics handles GET /api/admin/analytics. Days come back in display
// order, Monday first.
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.WeeklyAnalytics(), logger)
}

// Activities handles GET /api/admin/activities
func (h *DashboardHandler) Activities(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Activities(), logger)
}

// Monthly handles GET /api/admin/monthly-stats
func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.MonthlyStats(), logger)
}
