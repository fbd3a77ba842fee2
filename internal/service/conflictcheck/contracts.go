package conflictcheck

import (
	"context"

	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

// BookingProvider интерфейс доступа к срезу бронирований
// Репозиторий обязан вернуть записи с заполненным UserName (join с users)
type BookingProvider interface {
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetAllForConflictCheck(ctx context.Context) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
