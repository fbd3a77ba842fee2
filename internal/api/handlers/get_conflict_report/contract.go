package get_conflict_report

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

type ConflictReportService interface {
	GenerateConflictReport(ctx context.Context) (*domain.ConflictReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
