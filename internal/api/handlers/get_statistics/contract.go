package get_statistics

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/service/statistics/models"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, period string) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
