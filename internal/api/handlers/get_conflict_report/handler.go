package get_conflict_report

import (
	"net/http"

	"github.com/avdmitr/BCA-BookingChecker/internal/api/handlers"
)

type Handler struct {
	service ConflictReportService
	logger  Logger
}

func NewHandler(service ConflictReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/conflicts
// Полный отчет по конфликтам: пересечения, точные дубликаты, окна между бронированиями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GenerateConflictReport(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/conflicts - Failed to generate conflict report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/conflicts - Report generated: bookings=%d, overlapping=%d, conflicts=%d, gaps=%d",
		report.Summary.TotalBookings, report.Summary.OverlappingCount,
		report.Summary.ConflictCount, report.Summary.GapCount)
	handlers.RespondJSON(w, http.StatusOK, report)
}
