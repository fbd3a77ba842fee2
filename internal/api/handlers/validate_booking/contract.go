package validate_booking

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/service/bookings/models"
)

type BookingService interface {
	Validate(ctx context.Context, bookingID int64, requesterID int64) (*models.ValidationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
