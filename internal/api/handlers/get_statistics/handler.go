package get_statistics

import (
	"net/http"

	"github.com/avdmitr/BCA-BookingChecker/internal/api/handlers"
	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics?period=daily|weekly|yearly
// Неизвестный или пустой период трактуется как daily
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = domain.PeriodDaily
	}

	result, err := h.service.GetStatistics(r.Context(), period)
	if err != nil {
		h.logger.Error("GET /admin/statistics - Failed to get statistics: period=%s, error=%v", period, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/statistics - Statistics generated: period=%s, intervals=%d",
		result.Period, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, result)
}
