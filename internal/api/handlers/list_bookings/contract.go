package list_bookings

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, requesterID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
