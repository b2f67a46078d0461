package handler

import (
	"fmt"
	"net/http"
	"time"

	"betpromo/internal/container"
	"betpromo/internal/service/report"
	"betpromo/pkg/errors"
)

// ReportHandler serves the analytics exports
type ReportHandler struct {
	container *container.Container
}

// NewReportHandler creates a new report handler
func NewReportHandler(container *container.Container) *ReportHandler {
	return &ReportHandler{
		container: container,
	}
}

func (h *ReportHandler) snapshot() report.Data {
	s := h.container.Store
	return report.Data{
		Stats:       s.Stats(),
		Partners:    s.Partners(),
		Weekly:      s.WeeklyAnalytics(),
		Monthly:     s.MonthlyStats(),
		GeneratedAt: time.Now(),
	}
}

// ExportPDF handles GET /api/admin/reports/pdf
func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	data, err := h.container.Reports.BuildPDF(h.snapshot())
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to build PDF report", err), logger)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rapport-betpromo-%s.pdf"`, time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.WithError(err).Error("Failed to write PDF report")
	}
}

// ExportXLSX handles GET /api/admin/reports/xlsx
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	data, err := h.container.Reports.BuildXLSX(h.snapshot())
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to build XLSX report", err), logger)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rapport-betpromo-%s.xlsx"`, time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.WithError(err).Error("Failed to write XLSX report")
	}
}
